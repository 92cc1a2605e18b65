package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"f1telemetrycompare/pkg/model"
	"f1telemetrycompare/pkg/pubsub"
)

var upgrader = websocket.Upgrader{} // use default options

// Source exposes the provider manager's latest state to the dashboard.
type Source interface {
	Records() (model.LapRecord, model.LapRecord, *model.ComparisonResult, bool)
	Session() model.SessionRef
}

// Dashboard serves the comparison page: static charts, a live-updating
// summary over websocket, and a JSON endpoint with the raw series.
type Dashboard struct {
	mu            sync.Mutex
	source        Source
	latestPayload string
	payloadChan   <-chan string
}

func New(r *mux.Router, source Source, payloads *pubsub.PubSub[string]) *Dashboard {
	d := &Dashboard{
		source:      source,
		payloadChan: payloads.Subscribe(pubsub.PubSubComparisonTopic),
	}

	go d.trackPayloads()

	d.addHandlers(r)
	return d
}

func (d *Dashboard) trackPayloads() {
	for payload := range d.payloadChan {
		d.mu.Lock()
		d.latestPayload = payload
		d.mu.Unlock()
	}
}

func (d *Dashboard) addHandlers(r *mux.Router) {
	r.HandleFunc("/", d.pageHandler())
	r.HandleFunc("/ws", d.websocketHandler())
	r.HandleFunc("/data", d.dataHandler())
}

type pageData struct {
	WebSocketURL string
	Session      string
	SpeedSVG     string
	ThrottleSVG  string
}

func (d *Dashboard) pageHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _, result, ok := d.source.Records()
		if !ok || result == nil {
			fmt.Fprintf(w, "No hay datos de comparación todavía")
			return
		}
		session := d.source.Session()
		e := pageData{
			WebSocketURL: "ws://" + r.Host + "/ws",
			Session:      session.ID(),
			SpeedSVG:     fmt.Sprintf("/charts/%s_speed.svg", session.ID()),
			ThrottleSVG:  fmt.Sprintf("/charts/%s_throttle.svg", session.ID()),
		}
		homeTemplate.Execute(w, e)
	}
}

func (d *Dashboard) websocketHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}
		defer c.Close()
		mt, message, err := c.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			return
		}
		log.Printf("recv: %s (%d)", message, mt)
		t := time.NewTicker(time.Second)
		for {
			select {
			case <-t.C:
				d.mu.Lock()
				payload := d.latestPayload
				d.mu.Unlock()
				if payload == "" {
					continue
				}
				err = c.WriteMessage(mt, []byte(payload))
				if err != nil {
					log.Println("write:", err)
					t.Stop()
					return
				}
			case <-r.Context().Done():
				log.Print("websocket closed\n")
				t.Stop()
				return
			}
		}
	}
}

type seriesData struct {
	Session model.SessionRef        `json:"session"`
	Result  *model.ComparisonResult `json:"result"`
	DriverA model.LapRecord         `json:"driverA"`
	DriverB model.LapRecord         `json:"driverB"`
}

func (d *Dashboard) dataHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		a, b, result, ok := d.source.Records()
		if !ok {
			http.Error(w, "no comparison data yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(seriesData{
			Session: d.source.Session(),
			Result:  result,
			DriverA: a,
			DriverB: b,
		})
		if err != nil {
			log.Println("encode:", err)
		}
	}
}

var homeTemplate = template.Must(template.New("dashboard").Parse(`
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>F1 Telemetry Comparison — {{.Session}}</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #fafafa; }
h1 { font-size: 1.4em; }
.summary { margin-bottom: 1.5em; font-size: 1.1em; }
.summary span { margin-right: 2em; }
img { max-width: 100%; border: 1px solid #ddd; background: #fff; }
select { margin-bottom: 1em; }
</style>
</head>
<body>
<h1>Comparación de vueltas rápidas — {{.Session}}</h1>
<div class="summary">
<span id="drivers">-</span>
<span id="faster">-</span>
<span id="delta">-</span>
</div>
<select id="metric" onchange="switchMetric()">
<option value="speed">Velocidad</option>
<option value="throttle">Acelerador</option>
</select>
<div>
<img id="chart" src="{{.SpeedSVG}}" alt="chart">
</div>
<script>
var speedSVG = {{.SpeedSVG}};
var throttleSVG = {{.ThrottleSVG}};
function switchMetric() {
  var metric = document.getElementById("metric").value;
  document.getElementById("chart").src = metric === "throttle" ? throttleSVG : speedSVG;
}
var ws = new WebSocket({{.WebSocketURL}});
ws.onopen = function() { ws.send("hello"); };
ws.onmessage = function(evt) {
  var ready = JSON.parse(evt.data);
  var r = ready.result;
  document.getElementById("drivers").textContent = r.driverA + " vs " + r.driverB;
  document.getElementById("faster").textContent = "Más rápido: " + r.fasterDriver;
  document.getElementById("delta").textContent = "+" + r.timeDeltaSeconds.toFixed(3) + "s";
};
</script>
</body>
</html>
`))
