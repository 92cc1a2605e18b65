package comparison

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"f1telemetrycompare/pkg/model"
)

func testApp() *App {
	return NewApp(nil, nil, model.SessionRef{Year: 2024, RaceName: "Monaco", SessionType: "Q"}, nil)
}

func TestAcceptCommand(t *testing.T) {
	app := testApp()

	cases := []struct {
		command string
		want    bool
	}{
		{"/comparar VER LEC", true},
		{"/comparar ver lec", true},
		{"/comparar", true},
		{"/comparar VER", false},
		{"/comparar VERSTAPPEN LECLERC", false},
		{"/seguir VER", true},
		{"/seguir", false},
		{"/pilotos", true},
		{"/circuitos", false},
		{"hola", false},
	}

	for _, tc := range cases {
		handled, handler := app.AcceptCommand(tc.command)
		if handled != tc.want {
			t.Errorf("AcceptCommand(%q): got %v, want %v", tc.command, handled, tc.want)
		}
		if handled && handler == nil {
			t.Errorf("AcceptCommand(%q): handled but nil handler", tc.command)
		}
	}
}

func TestAcceptButton(t *testing.T) {
	app := testApp()

	if handled, _ := app.AcceptButton(buttonDrivers); !handled {
		t.Error("expected Pilotos button to be handled")
	}
	if handled, _ := app.AcceptButton(buttonFollowing); !handled {
		t.Error("expected Siguiendo button to be handled")
	}
	if handled, _ := app.AcceptButton("Circuitos"); handled {
		t.Error("unexpected button handled")
	}
}

func TestAcceptCallback(t *testing.T) {
	app := testApp()

	query := &tgbotapi.CallbackQuery{Data: "chart:speed:VER:LEC"}
	if handled, handler := app.AcceptCallback(query); !handled || handler == nil {
		t.Error("expected chart callback to be handled")
	}

	query = &tgbotapi.CallbackQuery{Data: "pager:1"}
	if handled, _ := app.AcceptCallback(query); handled {
		t.Error("unexpected callback handled")
	}

	query = &tgbotapi.CallbackQuery{Data: "chart:speed"}
	if handled, _ := app.AcceptCallback(query); handled {
		t.Error("malformed chart callback should not be handled")
	}
}
