/*
Package main is the entry point for the chatfront terminal client.

This file implements the interactive command loop: slash commands map to
context switches and directory operations, anything else is sent as a chat
message in the active context.
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chatfront/internal/app/api"
	"chatfront/internal/app/chat"
	"chatfront/internal/app/directory"
	"chatfront/internal/app/realtime"
	"chatfront/internal/app/render"
	"chatfront/internal/app/session"
	"chatfront/internal/pkg/logx"
)

const helpText = `Commands:
  /public              switch to the public feed
  /msg <user>          start a private chat
  /open <roomId>       open a private or group room
  /contacts            list contacts
  /rooms               list chat rooms
  /search <query>      search users
  /add <phone>         add a contact by phone number
  /group <name> [desc] create a group
  /who                 show online users
  /logout              sign out and quit
  /switch              sign out to change user
  /quit                quit`

// runCommands reads input lines until quit, sign-out, or cancellation.
func runCommands(ctx context.Context, app *chat.App, dir *directory.Directory, channel *realtime.Channel, client *api.Client, store *session.Store, sess session.Session, renderer *render.Terminal, in *bufio.Reader, out io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Fprintf(out, "[%s]> ", renderer.Prompt())

		line, err := readLine(in)
		if err != nil {
			return
		}

		if !strings.HasPrefix(line, "/") {
			app.Send(line)
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "/help":
			fmt.Fprintln(out, helpText)

		case "/public":
			app.SetContext(ctx, chat.Public())

		case "/msg":
			if arg == "" {
				fmt.Fprintln(out, "usage: /msg <user>")
				continue
			}
			app.SetContext(ctx, chat.Private(arg))

		case "/open":
			openRoom(ctx, app, dir, out, arg)

		case "/contacts":
			for _, c := range dir.Contacts() {
				fmt.Fprintf(out, "  %s (@%s) %s\n", c.Name, c.Username, c.PhoneNumber)
			}

		case "/rooms":
			listRooms(dir, out)

		case "/search":
			if arg == "" {
				fmt.Fprintln(out, "usage: /search <query>")
				continue
			}
			users, err := dir.SearchUsers(ctx, arg)
			if err != nil {
				logx.Warn("User search failed.", "query", arg)
				continue
			}
			for _, u := range users {
				fmt.Fprintf(out, "  %s (@%s) %s\n", u.Name, u.Username, u.PhoneNumber)
			}

		case "/add":
			if arg == "" {
				fmt.Fprintln(out, "usage: /add <phone>")
				continue
			}
			if err := dir.AddContact(ctx, arg); err != nil {
				logx.Warn("Add contact failed.", "phone", arg)
			}

		case "/group":
			name, desc, _ := strings.Cut(arg, " ")
			if name == "" {
				fmt.Fprintln(out, "usage: /group <name> [description]")
				continue
			}
			if err := dir.CreateGroup(ctx, name, strings.TrimSpace(desc), nil); err != nil {
				logx.Warn("Create group failed.", "name", name)
			}

		case "/who":
			renderer.SetPresence(app.Presence(), sess.Username)

		case "/logout":
			channel.Close()
			if err := client.Logout(ctx, sess.ID); err != nil {
				logx.Warn("Logout API call failed.")
			}
			store.Clear()
			return

		case "/switch":
			channel.Close()
			store.Clear()
			fmt.Fprintln(out, "Signed out. Run again to sign in as a different user.")
			return

		case "/quit":
			return

		default:
			fmt.Fprintln(out, "Unknown command. Try /help.")
		}
	}
}

// openRoom switches context to a cached room by id. Private rooms are
// addressed to the other participant; group rooms subscribe their topic.
func openRoom(ctx context.Context, app *chat.App, dir *directory.Directory, out io.Writer, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(out, "usage: /open <roomId>")
		return
	}

	room, ok := dir.RoomByID(id)
	if !ok {
		fmt.Fprintln(out, "Unknown room. Try /rooms.")
		return
	}

	if room.Type == api.RoomGroup {
		app.SetContext(ctx, chat.Group(id))
		return
	}

	app.SetContext(ctx, chat.PrivateRoom(id, dir.PeerOf(room)))
}

// listRooms prints the cached rooms, grouped by type.
func listRooms(dir *directory.Directory, out io.Writer) {
	fmt.Fprintln(out, "Private chats:")
	for _, room := range dir.PrivateRooms() {
		fmt.Fprintf(out, "  [%d] %s\n", room.ID, room.Name)
	}

	fmt.Fprintln(out, "Groups:")
	for _, room := range dir.GroupRooms() {
		desc := room.Description
		if desc != "" {
			desc = " - " + desc
		}
		fmt.Fprintf(out, "  [%d] %s%s (%d members)\n", room.ID, room.Name, desc, len(room.Participants))
	}
}
