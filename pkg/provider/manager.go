package provider

import (
	"context"
	"log"
	"sync"
	"time"

	"f1telemetrycompare/pkg/caster"
	"f1telemetrycompare/pkg/compare"
	"f1telemetrycompare/pkg/model"
	"f1telemetrycompare/pkg/pubsub"
)

// Manager refreshes the configured driver pair's fastest laps and publishes
// the telemetry and the derived comparison. Typed topics feed the
// notification layer; the JSON string topics feed the dashboard websocket.
type Manager struct {
	ctx     context.Context
	mu      sync.Mutex
	client  *Client
	ref     model.SessionRef
	driverA string
	driverB string

	payloads         *pubsub.PubSub[string]
	lapRecordCaster  caster.ChannelCaster[model.LapRecord]
	comparisonCaster caster.ChannelCaster[model.ComparisonReady]

	records map[string]model.LapRecord
	result  *model.ComparisonResult
}

func NewManager(ctx context.Context, client *Client, ref model.SessionRef, driverA, driverB string, payloads *pubsub.PubSub[string]) *Manager {
	return &Manager{
		ctx:              ctx,
		client:           client,
		ref:              ref,
		driverA:          driverA,
		driverB:          driverB,
		payloads:         payloads,
		lapRecordCaster:  caster.JSONChannelCaster[model.LapRecord]{},
		comparisonCaster: caster.JSONChannelCaster[model.ComparisonReady]{},
		records:          make(map[string]model.LapRecord),
	}
}

func (m *Manager) Sync(ticker *time.Ticker, exitChan chan bool) {
	m.doSync(time.Now())
	go func() {
		for {
			select {
			case <-exitChan:
				return
			case t := <-ticker.C:
				m.doSync(t)
			}
		}
	}()
}

// Records returns the last fetched lap records and comparison, if any.
func (m *Manager) Records() (model.LapRecord, model.LapRecord, *model.ComparisonResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, okA := m.records[m.driverA]
	b, okB := m.records[m.driverB]
	if !okA || !okB {
		return model.LapRecord{}, model.LapRecord{}, nil, false
	}
	return a, b, m.result, true
}

func (m *Manager) Session() model.SessionRef {
	return m.ref
}

func (m *Manager) doSync(t time.Time) {
	log.Println("Refreshing fastest laps at:", t)

	wg := sync.WaitGroup{}
	fetched := make([]model.LapRecord, 2)
	errs := make([]error, 2)
	for i, driver := range []string{m.driverA, m.driverB} {
		wg.Add(1)
		go func(idx int, driver string) {
			defer wg.Done()
			fetched[idx], errs[idx] = m.client.GetFastestLap(m.ctx, m.ref, driver)
		}(i, driver)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			log.Printf("Error fetching fastest lap: %s", err.Error())
			return
		}
		m.publishLapRecord(fetched[i])
	}

	result, err := compare.Compare(fetched[0], fetched[1])
	if err != nil {
		log.Printf("Error comparing laps: %s", err.Error())
		return
	}

	m.mu.Lock()
	m.records[m.driverA] = fetched[0]
	m.records[m.driverB] = fetched[1]
	m.result = &result
	m.mu.Unlock()

	ready := model.ComparisonReady{Session: m.ref, Result: result}
	pubsub.ComparisonPubSub.Publish(pubsub.PubSubComparisonTopic, ready)

	payload, err := m.comparisonCaster.To(ready)
	if err != nil {
		log.Printf("Error casting comparison to json: %s", err.Error())
	} else {
		m.payloads.Publish(pubsub.PubSubComparisonTopic, payload)
	}
}

func (m *Manager) publishLapRecord(record model.LapRecord) {
	pubsub.LapRecordPubSub.Publish(pubsub.PubSubLapRecordPrefix+record.DriverCode, record)

	payload, err := m.lapRecordCaster.To(record)
	if err != nil {
		log.Printf("Error casting lap record to json: %s", err.Error())
		return
	}
	m.payloads.Publish(pubsub.PubSubLapRecordPrefix+record.DriverCode, payload)
}
