package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jedib0t/go-pretty/v6/progress"

	"f1telemetrycompare/pkg/apps"
	"f1telemetrycompare/pkg/apps/comparison"
	"f1telemetrycompare/pkg/charts"
	"f1telemetrycompare/pkg/compare"
	"f1telemetrycompare/pkg/dashboard"
	"f1telemetrycompare/pkg/export"
	"f1telemetrycompare/pkg/helper"
	"f1telemetrycompare/pkg/model"
	"f1telemetrycompare/pkg/notification"
	"f1telemetrycompare/pkg/provider"
	"f1telemetrycompare/pkg/pubsub"
	"f1telemetrycompare/pkg/settings"
	"f1telemetrycompare/pkg/webserver"
)

const (
	defaultYear    = 2024
	defaultRace    = "Monaco"
	defaultSession = "Q"
	defaultDriverA = "VER"
	defaultDriverB = "LEC"

	csvFileName = "f1_telemetry_comparison.csv"

	refreshInterval = 5 * time.Minute
)

var bot *tgbotapi.BotAPI

func main() {
	domain := os.Getenv("TELEMETRY_API_DOMAIN")
	if domain == "" {
		log.Panic("TELEMETRY_API_DOMAIN is not set")
	}

	ref := sessionFromEnv()
	driverA := helper.NormalizeDriverCode(envOrDefault("DRIVER1", defaultDriverA))
	driverB := helper.NormalizeDriverCode(envOrDefault("DRIVER2", defaultDriverB))

	cache, err := provider.NewCache(os.Getenv("TELEMETRY_CACHE_DIR"))
	if err != nil {
		log.Panic(err)
	}
	client := provider.NewClient(domain, cache)

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)

	recordA, recordB, err := fetchPair(ctx, client, ref, driverA, driverB)
	if err != nil {
		log.Panic(err)
	}

	result, err := compare.Compare(recordA, recordB)
	if err != nil {
		log.Panic(err)
	}

	fmt.Printf("Vueltas rápidas en %s\n\n%s\n", ref.ID(), export.SummaryTable(result))

	if err := export.WriteTelemetryCSV(csvFileName, recordA, recordB); err != nil {
		log.Printf("Error writing CSV: %s", err.Error())
	} else {
		log.Printf("Telemetry saved to %s", csvFileName)
	}
	buildCharts(ref, recordA, recordB)

	serveDashboard := os.Getenv("SERVE_DASHBOARD") == "true"
	token := os.Getenv("TELEGRAM_TOKEN")
	if !serveDashboard && token == "" {
		cancel()
		return
	}

	payloads := pubsub.NewPubSub[string]()
	manager := provider.NewManager(ctx, client, ref, driverA, driverB, payloads)

	if serveDashboard {
		wm := webserver.NewManager()
		dashboard.New(wm.Router(), manager, payloads)
		go wm.Serve(ctx)
	}

	exitChans := []chan bool{}
	if token != "" {
		exitChan := startBot(ctx, token, client, ref)
		exitChans = append(exitChans, exitChan)
	}

	refreshTicker := time.NewTicker(refreshInterval)
	syncExitChan := make(chan bool)
	exitChans = append(exitChans, syncExitChan)
	manager.Sync(refreshTicker, syncExitChan)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	// lock the main thread until we receive a signal
	<-sigs

	refreshTicker.Stop()
	for _, exitChan := range exitChans {
		exitChan <- true
	}

	cancel()
}

func sessionFromEnv() model.SessionRef {
	year := defaultYear
	if y, err := strconv.Atoi(os.Getenv("YEAR")); err == nil {
		year = y
	}
	return model.SessionRef{
		Year:        year,
		RaceName:    envOrDefault("RACE", defaultRace),
		SessionType: envOrDefault("SESSION", defaultSession),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// fetchPair downloads both drivers' fastest laps in parallel with a small
// terminal progress view.
func fetchPair(ctx context.Context, client *provider.Client, ref model.SessionRef, driverA, driverB string) (model.LapRecord, model.LapRecord, error) {
	pw := progress.NewWriter()
	pw.SetAutoStop(true)
	pw.SetTrackerLength(34)
	pw.SetNumTrackersExpected(2)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Percentage = false
	pw.Style().Visibility.Speed = false
	pw.Style().Visibility.Value = false
	pw.Style().Chars.BoxRight = "🏁"

	go pw.Render()

	records := make([]model.LapRecord, 2)
	errs := make([]error, 2)
	wg := sync.WaitGroup{}
	for i, driver := range []string{driverA, driverB} {
		wg.Add(1)
		tracker := &progress.Tracker{Message: driver, Total: 1}
		pw.AppendTracker(tracker)
		go func(idx int, driver string, tracker *progress.Tracker) {
			defer wg.Done()
			records[idx], errs[idx] = client.GetFastestLap(ctx, ref, driver)
			if errs[idx] != nil {
				tracker.MarkAsErrored()
				return
			}
			tracker.MarkAsDone()
		}(i, driver, tracker)
	}
	wg.Wait()
	pw.Stop()

	for _, err := range errs {
		if err != nil {
			return model.LapRecord{}, model.LapRecord{}, err
		}
	}
	return records[0], records[1], nil
}

func buildCharts(ref model.SessionRef, records ...model.LapRecord) {
	for _, metric := range []charts.Metric{charts.MetricSpeed, charts.MetricThrottle} {
		for _, ext := range []string{"png", "svg"} {
			path := charts.FilePath(ref, metric, ext)
			var err error
			if ext == "png" {
				err = charts.BuildComparisonPNG(path, metric, records...)
			} else {
				err = charts.BuildComparisonSVG(path, metric, records...)
			}
			if err != nil {
				log.Printf("Error building %s chart: %s", metric, err.Error())
				continue
			}
			log.Printf("Chart saved to %s", path)
		}
	}
}

func startBot(ctx context.Context, token string, client *provider.Client, ref model.SessionRef) chan bool {
	var err error
	bot, err = tgbotapi.NewBotAPI(token)
	if err != nil {
		// Abort if something is wrong
		log.Panic(err)
	}

	// Set this to true to log all interactions with telegram servers
	bot.Debug = false

	sm, err := settings.NewManager("")
	if err != nil {
		log.Panic(err)
	}

	app := comparison.NewApp(bot, client, ref, sm)

	exitChan := make(chan bool)
	nm := notification.NewManager(ctx, bot, sm)
	go nm.Start(exitChan)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	go receiveUpdates(ctx, updates, []apps.Accepter{app})

	log.Println("Start listening for updates. Press Ctrl-C to stop it")
	return exitChan
}
