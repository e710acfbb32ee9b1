// Command chat runs a diagnostic dialogue in the terminal against a
// local store, without the HTTP server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/doctor-dialogue-server/internal/catalog"
	"github.com/doctor-dialogue-server/internal/config"
	"github.com/doctor-dialogue-server/internal/service"
	"github.com/doctor-dialogue-server/internal/speech"
	"github.com/doctor-dialogue-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	ctx := context.Background()

	st, err := store.OpenSQLite(cfg.Store.SQLitePath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	cat, err := catalog.Open(cfg.Catalog.Path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open condition catalog: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		username = "guest"
	}

	transcriber := speech.NewNullTranscriber(logger)

	selector := service.NewSeveritySelector()
	session := service.NewSession(ctx, username, service.SessionDeps{
		Catalog:       cat,
		Profiles:      st,
		Prescriptions: st,
		Severity:      selector,
		Logger:        logger,
	})

	fmt.Println("Type your answers; '/severity 1..3' sets the severity, '/listen' takes voice input, '/history' shows past prescriptions, '/reset' starts over, '/quit' exits.")
	fmt.Printf("Doctor: %s\n", session.Start(ctx))

	for {
		fmt.Print("You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)

		if line == "/listen" {
			heard, err := transcriber.Listen(ctx)
			if err != nil {
				fmt.Printf("Doctor: Sorry, I could not understand that (%v).\n", err)
				continue
			}
			line = heard
		}

		switch {
		case line == "/quit":
			return
		case line == "/reset":
			fmt.Printf("Doctor: %s\n", session.Reset(ctx))
			continue
		case line == "/history":
			list, err := st.ListPrescriptions(ctx, username)
			if err != nil {
				fmt.Printf("could not load history: %v\n", err)
				continue
			}
			for _, rec := range list {
				fmt.Println(rec.HistoryEntry())
			}
			continue
		case strings.HasPrefix(line, "/severity "):
			if level, err := strconv.Atoi(strings.TrimPrefix(line, "/severity ")); err == nil {
				selector.Set(level)
				fmt.Printf("Severity set to %d\n", level)
			}
			continue
		}

		reply, err := session.Answer(ctx, line)
		if err != nil {
			fmt.Printf("Doctor: %v\n", err)
			continue
		}

		fmt.Printf("Doctor: %s\n", reply.Prompt)
		if reply.Done && reply.Prescription != nil {
			fmt.Println()
			fmt.Println(reply.Prescription.Text)
			if reply.Warning != "" {
				fmt.Printf("Note: %s\n", reply.Warning)
			}
		}
	}
}
