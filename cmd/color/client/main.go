package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/client"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/config"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/factory"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/logger"
)

func main() {
	cfg, err := config.LoadClient(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logger.Init()

	ctx := context.Background()
	resolver, err := factory.NewResolverFactory(cfg).Create(ctx)
	if err != nil {
		logger.Fatal("Failed to create address resolver", "error", err)
	}

	// Prompts are noise when input is piped in
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	prompt := func(msg string) {
		if interactive {
			fmt.Println(msg)
		}
	}

	in := bufio.NewScanner(os.Stdin)
	name := cfg.UserName
	if name == "" {
		prompt("Enter your name: ")
		if !in.Scan() {
			return
		}
		name = in.Text()
	}
	fmt.Println("Hi " + name)

	session := client.NewSession(client.New(resolver), name)
	for {
		prompt("Enter a color, or type quit to end: ")
		if !in.Scan() {
			break
		}
		color := in.Text()
		if client.IsQuit(color) {
			break
		}

		resp, err := session.Send(ctx, color)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n%s\n%v\n\n", describe(err), err)
			continue
		}
		fmt.Println("\nFROM THE SERVER:")
		fmt.Println(resp.MessageToClient)
		fmt.Println("The color sent back is: " + resp.ColorSentFromServer)
		fmt.Printf("The color count is: %d\n\n", resp.ColorCount)
	}

	fmt.Println("Cancelled by user request.")
	if err := session.WriteSummary(os.Stdout); err != nil {
		logger.Error("Failed to write summary", "error", err)
	}
}

func describe(err error) string {
	switch core.KindOf(err) {
	case core.KindConnectionRefused:
		return "The color server refused our connection! Is it running?"
	case core.KindUnknownHost:
		return "Unknown host problem."
	case core.KindFraming, core.KindDecode:
		return "The color server sent a response we could not read."
	case core.KindEncode:
		return "Your request could not be encoded."
	default:
		return "The exchange with the color server failed."
	}
}
