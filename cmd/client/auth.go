/*
Package main is the entry point for the chatfront terminal client.

This file implements the interactive sign-in flow used when no local session
exists: login against the backend, optional signup, and persisting the
returned session record.
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"chatfront/internal/app/api"
	"chatfront/internal/app/session"
)

// signIn runs the interactive login/signup flow until a session is obtained
// and persisted, or input ends. Backend rejections are shown and the flow
// restarts; login and signup are the only places request failures surface.
func signIn(ctx context.Context, client *api.Client, store *session.Store, in *bufio.Reader, out io.Writer) (session.Session, error) {
	for {
		fmt.Fprint(out, "login or signup? [login]: ")
		choice, err := readLine(in)
		if err != nil {
			return session.Session{}, err
		}

		if strings.EqualFold(choice, "signup") {
			if err := runSignup(ctx, client, in, out); err != nil {
				return session.Session{}, err
			}
			continue
		}

		fmt.Fprint(out, "Username or phone: ")
		usernameOrPhone, err := readLine(in)
		if err != nil {
			return session.Session{}, err
		}

		fmt.Fprint(out, "Password: ")
		password, err := readLine(in)
		if err != nil {
			return session.Session{}, err
		}

		sess, err := client.Login(ctx, usernameOrPhone, password)
		if err != nil {
			fmt.Fprintf(out, "Login failed: %v\n", err)
			continue
		}

		if err := store.Save(sess); err != nil {
			return session.Session{}, err
		}

		fmt.Fprintln(out, "Login successful!")
		return sess, nil
	}
}

// runSignup collects account details and registers them. On success the user
// is sent back to the login prompt, matching the backend's "please login"
// flow.
func runSignup(ctx context.Context, client *api.Client, in *bufio.Reader, out io.Writer) error {
	fmt.Fprint(out, "Username: ")
	username, err := readLine(in)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Name: ")
	name, err := readLine(in)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Phone number: ")
	phone, err := readLine(in)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Password: ")
	password, err := readLine(in)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Confirm password: ")
	confirm, err := readLine(in)
	if err != nil {
		return err
	}

	if password != confirm {
		fmt.Fprintln(out, "Passwords do not match!")
		return nil
	}

	if err := client.Signup(ctx, username, name, phone, password); err != nil {
		fmt.Fprintf(out, "Signup failed: %v\n", err)
		return nil
	}

	fmt.Fprintln(out, "Signup successful! Please login.")
	return nil
}

// readLine reads one trimmed line of input.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
