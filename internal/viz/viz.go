// Package viz renders summary charts (publication trends, agency
// distribution) from archived JSON datasets.
package viz

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/insightsgpt/insightsgpt/internal/worker"
)

// Entry is the subset of dataset fields the charts aggregate over.
type Entry struct {
	PublicationDate string `json:"publication_date"`
	Agency          string `json:"agency"`
}

// LoadFolder combines the entries of every .json file in dir, reading
// both {"results": [...]} envelopes and bare top-level arrays. Files
// that fail to decode are skipped.
func LoadFolder(dir string) ([]Entry, error) {
	files, err := worker.ListJSONFiles(dir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var envelope struct {
			Results []Entry `json:"results"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil {
			entries = append(entries, envelope.Results...)
			continue
		}
		var list []Entry
		if err := json.Unmarshal(raw, &list); err == nil {
			entries = append(entries, list...)
		}
	}
	return entries, nil
}

// PublicationTrends renders a line chart of entry counts by
// publication year to publication_trends.png under outputDir.
func PublicationTrends(entries []Entry, outputDir string) (string, error) {
	counts := map[int]int{}
	for _, e := range entries {
		if len(e.PublicationDate) < 4 {
			continue
		}
		year, err := strconv.Atoi(e.PublicationDate[:4])
		if err != nil {
			continue
		}
		counts[year]++
	}
	if len(counts) == 0 {
		return "", fmt.Errorf("no publication dates found")
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y)
		ys[i] = float64(counts[y])
	}

	graph := chart.Chart{
		Title:  "Publication Trends by Year",
		Width:  1000,
		Height: 600,
		XAxis: chart.XAxis{
			Name:           "Year",
			ValueFormatter: func(v interface{}) string { return strconv.Itoa(int(v.(float64))) },
		},
		YAxis: chart.YAxis{Name: "Number of Publications"},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
	}

	return render(graph.Render, outputDir, "publication_trends.png")
}

// AgencyDistribution renders a bar chart of the ten agencies with the
// most entries to agency_distribution.png under outputDir.
func AgencyDistribution(entries []Entry, outputDir string) (string, error) {
	counts := map[string]int{}
	for _, e := range entries {
		agency := e.Agency
		if agency == "" {
			agency = "Unknown"
		}
		counts[agency]++
	}
	if len(counts) == 0 {
		return "", fmt.Errorf("no agency data found")
	}

	type agencyCount struct {
		name  string
		count int
	}
	ranked := make([]agencyCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, agencyCount{name, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	bars := make([]chart.Value, len(ranked))
	for i, a := range ranked {
		bars[i] = chart.Value{Label: a.name, Value: float64(a.count)}
	}

	graph := chart.BarChart{
		Title:    "Top 10 Agencies by Document Count",
		Width:    1200,
		Height:   800,
		BarWidth: 60,
		Bars:     bars,
	}

	return render(graph.Render, outputDir, "agency_distribution.png")
}

func render(renderFn func(chart.RendererProvider, io.Writer) error, outputDir, name string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := renderFn(chart.PNG, f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}
