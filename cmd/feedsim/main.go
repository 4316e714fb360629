// Command feedsim serves a canned league injury payload in the upstream
// feed's shape, for exercising the service without hitting the real API.
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"time"
)

const readHeaderTimeout = 5 * time.Second

type athlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type details struct {
	Type string `json:"type"`
}

type injuryEntry struct {
	Status  string  `json:"status"`
	Date    string  `json:"date"`
	Athlete athlete `json:"athlete"`
	Details details `json:"details"`
}

type teamInjuries struct {
	DisplayName string        `json:"displayName"`
	Injuries    []injuryEntry `json:"injuries"`
}

type leagueInjuries struct {
	Injuries []teamInjuries `json:"injuries"`
}

func cannedPayload(now time.Time) leagueInjuries {
	ts := now.UTC().Format(time.RFC3339)
	return leagueInjuries{
		Injuries: []teamInjuries{
			{
				DisplayName: "Boston Celtics",
				Injuries: []injuryEntry{
					{Status: "Out", Date: ts, Athlete: athlete{ID: "4065648", DisplayName: "Jayson Tatum"}, Details: details{Type: "Achilles"}},
					{Status: "Questionable", Date: ts, Athlete: athlete{ID: "3917376", DisplayName: "Jaylen Brown"}, Details: details{Type: "Knee"}},
				},
			},
			{
				DisplayName: "Los Angeles Lakers",
				Injuries: []injuryEntry{
					{Status: "Day-To-Day", Date: ts, Athlete: athlete{ID: "1966", DisplayName: "LeBron James"}, Details: details{Type: "Ankle"}},
				},
			},
			{
				DisplayName: "Milwaukee Bucks",
				Injuries: []injuryEntry{
					{Status: "Doubtful", Date: ts, Athlete: athlete{ID: "3032977", DisplayName: "Giannis Antetokounmpo"}, Details: details{Type: "Calf"}},
				},
			},
		},
	}
}

func main() {
	var (
		addr  = flag.String("addr", ":9091", "listen address")
		delay = flag.Duration("delay", 0, "artificial response delay")
		fail  = flag.Bool("fail", false, "respond with 503 to every request")
	)
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/injuries", func(w http.ResponseWriter, r *http.Request) {
		if *delay > 0 {
			time.Sleep(*delay)
		}
		if *fail {
			http.Error(w, "simulated outage", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(cannedPayload(time.Now()))
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	os.Stderr.WriteString("feedsim listening on " + *addr + "\n")
	if err := srv.ListenAndServe(); err != nil {
		os.Stderr.WriteString("feedsim failed: " + err.Error() + "\n")
	}
}
