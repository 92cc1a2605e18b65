package comparison

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"f1telemetrycompare/pkg/charts"
	"f1telemetrycompare/pkg/compare"
	"f1telemetrycompare/pkg/export"
	"f1telemetrycompare/pkg/helper"
	"f1telemetrycompare/pkg/model"
	"f1telemetrycompare/pkg/provider"
	"f1telemetrycompare/pkg/settings"
)

const (
	menuCompare = "/comparar"
	menuFollow  = "/seguir"
	menuDrivers = "/pilotos"

	buttonDrivers   = "Pilotos"
	buttonFollowing = "Siguiendo"

	inlineKeyboardSpeed    = "Velocidad"
	inlineKeyboardThrottle = "Acelerador"

	subcommandChart = "chart"

	symbolSpeed    = "🏎️"
	symbolThrottle = "🦶"
)

var (
	commandCompare = regexp.MustCompile(`^\/comparar\s+([A-Za-z]{2,3})\s+([A-Za-z]{2,3})$`)
	commandFollow  = regexp.MustCompile(`^\/seguir\s+([A-Za-z]{2,3})$`)
)

// App lets a chat request fastest-lap comparisons and chart renders for any
// driver pair in the configured session.
type App struct {
	bot          *tgbotapi.BotAPI
	client       *provider.Client
	ref          model.SessionRef
	settings     *settings.Manager
	menuKeyboard tgbotapi.ReplyKeyboardMarkup
}

func NewApp(bot *tgbotapi.BotAPI, client *provider.Client, ref model.SessionRef, sm *settings.Manager) *App {
	menuKeyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonDrivers),
			tgbotapi.NewKeyboardButton(buttonFollowing),
		),
	)

	return &App{
		bot:          bot,
		client:       client,
		ref:          ref,
		settings:     sm,
		menuKeyboard: menuKeyboard,
	}
}

func (a *App) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	switch {
	case commandCompare.MatchString(command):
		matches := commandCompare.FindStringSubmatch(command)
		driverA := helper.NormalizeDriverCode(matches[1])
		driverB := helper.NormalizeDriverCode(matches[2])
		return true, a.renderComparison(driverA, driverB)

	case commandFollow.MatchString(command):
		driver := helper.NormalizeDriverCode(commandFollow.FindStringSubmatch(command)[1])
		return true, a.toggleFollow(driver)

	case command == menuDrivers:
		return true, a.renderDrivers()

	case command == menuCompare:
		return true, func(ctx context.Context, chatId int64) error {
			message := fmt.Sprintf("Uso: %s VER LEC", menuCompare)
			msg := tgbotapi.NewMessage(chatId, message)
			msg.ReplyMarkup = a.menuKeyboard
			_, err := a.bot.Send(msg)
			return err
		}
	}
	return false, nil
}

func (a *App) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == buttonDrivers {
		return true, a.renderDrivers()
	} else if button == buttonFollowing {
		return true, a.renderFollowing()
	}
	return false, nil
}

func (a *App) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] == subcommandChart && len(data) == 4 {
		return true, a.renderChartCallback(data[1], data[2], data[3])
	}
	return false, nil
}

func (a *App) renderComparison(driverA, driverB string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		recordA, err := a.client.GetFastestLap(ctx, a.ref, driverA)
		if err != nil {
			return a.sendError(chatId, fmt.Sprintf("No hay telemetría para %s", driverA))
		}
		recordB, err := a.client.GetFastestLap(ctx, a.ref, driverB)
		if err != nil {
			return a.sendError(chatId, fmt.Sprintf("No hay telemetría para %s", driverB))
		}

		result, err := compare.Compare(recordA, recordB)
		if err != nil {
			log.Printf("Error comparing laps: %s", err.Error())
			return a.sendError(chatId, "No se pudo comparar las vueltas")
		}

		rendered := export.SummaryTable(result)
		keyboard := a.chartKeyboard(driverA, driverB)

		msg := tgbotapi.NewMessage(chatId, fmt.Sprintf("```\nVueltas rápidas en %q\n\n%s```", a.ref.ID(), rendered))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = keyboard
		_, err = a.bot.Send(msg)
		return err
	}
}

func (a *App) chartKeyboard(driverA, driverB string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardSpeed+" "+symbolSpeed, fmt.Sprintf("%s:%s:%s:%s", subcommandChart, charts.MetricSpeed, driverA, driverB)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardThrottle+" "+symbolThrottle, fmt.Sprintf("%s:%s:%s:%s", subcommandChart, charts.MetricThrottle, driverA, driverB)),
		),
	)
}

func (a *App) renderChartCallback(metric, driverA, driverB string) func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	return func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		chatId := query.Message.Chat.ID

		recordA, err := a.client.GetFastestLap(ctx, a.ref, driverA)
		if err != nil {
			return a.sendError(chatId, fmt.Sprintf("No hay telemetría para %s", driverA))
		}
		recordB, err := a.client.GetFastestLap(ctx, a.ref, driverB)
		if err != nil {
			return a.sendError(chatId, fmt.Sprintf("No hay telemetría para %s", driverB))
		}

		path := charts.FilePath(a.ref, charts.Metric(metric), "png")
		if err := charts.BuildComparisonPNG(path, charts.Metric(metric), recordA, recordB); err != nil {
			log.Printf("Error building chart: %s", err.Error())
			return a.sendError(chatId, "No se pudo generar el gráfico")
		}

		photo := tgbotapi.NewPhoto(chatId, tgbotapi.FilePath(path))
		photo.Caption = fmt.Sprintf("%s vs %s — %s", driverA, driverB, metric)
		_, err = a.bot.Send(photo)
		return err
	}
}

func (a *App) renderDrivers() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		info, err := a.client.GetSessionInfo(ctx, a.ref)
		if err != nil {
			log.Printf("Error getting session info: %s", err.Error())
			return a.sendError(chatId, "No hay sesión disponible")
		}

		message := fmt.Sprintf("Pilotos en %s:\n\n", info.String())
		driverStrings := make([]string, len(info.Drivers))
		for i, driver := range info.Drivers {
			driverStrings[i] = fmt.Sprintf(" ▸ %s ➡ %s %s", driver, menuFollow, driver)
		}
		message += strings.Join(driverStrings, "\n")

		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = a.menuKeyboard
		_, err = a.bot.Send(msg)
		return err
	}
}

func (a *App) renderFollowing() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		drivers, err := a.settings.ListFollowedDrivers(fmt.Sprint(chatId))
		if err != nil {
			return err
		}

		message := "No sigues a ningún piloto"
		if len(drivers) > 0 {
			message = "Sigues a: " + strings.Join(drivers, ", ")
		}
		msg := tgbotapi.NewMessage(chatId, message)
		_, err = a.bot.Send(msg)
		return err
	}
}

func (a *App) toggleFollow(driver string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		userID := fmt.Sprint(chatId)
		following, err := a.settings.ToggleFollow(userID, userID, fmt.Sprint(chatId), driver)
		if err != nil {
			return err
		}

		message := fmt.Sprintf("🔕 Ya no sigues a %s", driver)
		if following {
			message = fmt.Sprintf("🔔 Ahora sigues a %s", driver)
		}
		msg := tgbotapi.NewMessage(chatId, message)
		_, err = a.bot.Send(msg)
		return err
	}
}

func (a *App) sendError(chatId int64, message string) error {
	msg := tgbotapi.NewMessage(chatId, message)
	_, err := a.bot.Send(msg)
	return err
}
