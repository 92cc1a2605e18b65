package main

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"f1telemetrycompare/pkg/apps"
)

const (
	menuStart = "/start"
	menuMenu  = "/menu"
)

func receiveUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel, accepters []apps.Accepter) {
	for {
		select {
		// stop looping if ctx is cancelled
		case <-ctx.Done():
			return
		// receive update from channel and then handle it
		case update := <-updates:
			handleUpdate(ctx, update, accepters)
		}
	}
}

func handleUpdate(ctx context.Context, update tgbotapi.Update, accepters []apps.Accepter) {
	switch {
	// Handle messages
	case update.Message != nil:
		handleMessage(ctx, update.Message, accepters)
	// Handle button clicks
	case update.CallbackQuery != nil:
		handleCallbackQuery(ctx, update.CallbackQuery, accepters)
	}
}

func handleMessage(ctx context.Context, message *tgbotapi.Message, accepters []apps.Accepter) {
	user := message.From
	text := message.Text

	if user == nil {
		return
	}

	log.Printf("%s wrote %s", user.FirstName, text)

	var err error
	if message.IsCommand() {
		err = handleCommand(ctx, message.Chat.ID, text, accepters)
	} else {
		err = handleButton(ctx, message.Chat.ID, text, accepters)
	}

	if err != nil {
		log.Printf("An error occured: %s", err.Error())
	}
}

func handleCommand(ctx context.Context, chatId int64, command string, accepters []apps.Accepter) error {
	if command == menuStart || command == menuMenu {
		return sendWelcome(chatId)
	}

	for _, accepter := range accepters {
		accept, handler := accepter.AcceptCommand(command)
		if accept {
			return handler(ctx, chatId)
		}
	}
	return nil
}

func handleButton(ctx context.Context, chatId int64, button string, accepters []apps.Accepter) error {
	for _, accepter := range accepters {
		accept, handler := accepter.AcceptButton(button)
		if accept {
			return handler(ctx, chatId)
		}
	}
	return nil
}

func handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery, accepters []apps.Accepter) {
	for _, accepter := range accepters {
		accept, handler := accepter.AcceptCallback(query)
		if accept {
			if err := handler(ctx, query); err != nil {
				log.Printf("An error occured: %s", err.Error())
			}
			return
		}
	}
}

func sendWelcome(chatId int64) error {
	message := strings.Join([]string{
		"Hola, soy el bot de comparación de telemetría de F1.",
		"",
		"Puedes usar los siguientes comandos:",
		"",
		"/comparar VER LEC - Compara las vueltas rápidas de dos pilotos",
		"/pilotos - Muestra los pilotos de la sesión",
		"/seguir VER - Recibe avisos cuando haya nuevas comparaciones",
	}, "\n")
	msg := tgbotapi.NewMessage(chatId, message)
	_, err := bot.Send(msg)
	return err
}
