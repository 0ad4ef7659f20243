/*
Package main is the entry point for the chatfront terminal client.

It bootstraps the local session (running the sign-in flow when none exists),
connects the realtime channel, starts the inbound dispatch loop, and drives
the interactive command loop until the user quits or signs out.
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"chatfront/internal/app/api"
	"chatfront/internal/app/chat"
	"chatfront/internal/app/directory"
	"chatfront/internal/app/realtime"
	"chatfront/internal/app/render"
	"chatfront/internal/app/session"
	"chatfront/internal/configs"
	"chatfront/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.Environment == "development")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewStore(cfg.SessionFile)
	client := api.NewClient(cfg.APIBaseURL)

	in := bufio.NewReader(os.Stdin)
	out := os.Stdout

	sess, err := store.Load()
	if session.IsNotAuthenticated(err) {
		sess, err = signIn(ctx, client, store, in, out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sign-in failed: %v\n", err)
		os.Exit(1)
	}

	renderer := render.NewTerminal(out, true)
	dir := directory.New(client, sess.ID, sess.Username)
	channel := realtime.NewChannel(cfg.WSURL, sess.Username)

	renderer.AppendSystem("Connected as " + sess.DisplayName())

	connected := false
	if err := channel.Connect(ctx); err != nil {
		// One visible notice, no retry. REST features keep working.
		renderer.AppendSystem("Failed to connect to chat server")
	} else {
		connected = true
		renderer.AppendSystem("Connected to chat server")
	}

	// Errors here are logged inside Reload; the UI just shows empty lists.
	dir.Reload(ctx)

	app := chat.NewApp(sess, channel, client, dir, renderer)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if connected {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.Run(loopCtx, channel.Events())
		}()
	}

	runCommands(loopCtx, app, dir, channel, client, store, sess, renderer, in, out)

	channel.Close()
	cancel()
	wg.Wait()
}
