package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aerolens/camsync/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	TransitionsByKind map[string]int
	Overrides         map[string]int
	Sessions          map[string]*SessionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	RemoteAddr string
	Requests   int
	Answered   int
	Refused    int
	TotalRTT   time.Duration
	MaxRTT     time.Duration

	pending map[uint32]time.Time
}

// AverageRTT returns the mean time between a request and its response.
func (s *SessionStats) AverageRTT() time.Duration {
	if s.Answered == 0 {
		return 0
	}
	return s.TotalRTT / time.Duration(s.Answered)
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		TransitionsByKind: make(map[string]int),
		Overrides:         make(map[string]int),
		Sessions:          make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	session, ok := s.Sessions[event.SessionID]
	if !ok {
		session = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
			pending:   make(map[uint32]time.Time),
		}
		s.Sessions[event.SessionID] = session
	}
	session.Events++
	if event.Timestamp.After(session.LastSeen) {
		session.LastSeen = event.Timestamp
	}
	if event.RemoteAddr != "" && session.RemoteAddr == "" {
		session.RemoteAddr = event.RemoteAddr
	}

	switch {
	case event.Message != nil:
		session.addMessage(event.Timestamp, event.Message)
	case event.Transition != nil:
		s.TransitionsByKind[event.Transition.Kind]++
		if event.Transition.Kind == "OVERRIDE" {
			s.Overrides[event.Transition.Setting]++
		}
	case event.Error != nil:
		s.Errors++
	}
}

// Requests are matched to responses by message ID within a session. A
// request that is never answered stays pending.
func (s *SessionStats) addMessage(ts time.Time, msg *log.MessageEvent) {
	switch msg.Type {
	case log.MessageTypeRequest:
		s.Requests++
		s.pending[msg.MessageID] = ts
	case log.MessageTypeResponse:
		sent, ok := s.pending[msg.MessageID]
		if !ok {
			return
		}
		delete(s.pending, msg.MessageID)
		s.Answered++
		if msg.Status != nil && !msg.Status.IsSuccess() {
			s.Refused++
		}
		rtt := ts.Sub(sent)
		s.TotalRTT += rtt
		if rtt > s.MaxRTT {
			s.MaxRTT = rtt
		}
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Camera Sync Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerWire, log.LayerSetting, log.LayerSession} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryTransition, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}

	if len(stats.TransitionsByKind) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Transitions:")
		for _, kind := range sortedKeys(stats.TransitionsByKind) {
			fmt.Fprintf(w, "  %-12s %d\n", kind+":", stats.TransitionsByKind[kind])
		}
	}
	if len(stats.Overrides) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Overrides by Setting:")
		for _, name := range sortedKeys(stats.Overrides) {
			fmt.Fprintf(w, "  %-16s %d\n", name+":", stats.Overrides[name])
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenID(s.id), s.stats.Events, duration)
			if s.stats.RemoteAddr != "" {
				fmt.Fprintf(w, "           Remote: %s\n", s.stats.RemoteAddr)
			}
			if s.stats.Requests > 0 {
				fmt.Fprintf(w, "           Requests: %d (answered %d, refused %d, unanswered %d)\n",
					s.stats.Requests, s.stats.Answered, s.stats.Refused, len(s.stats.pending))
			}
			if s.stats.Answered > 0 {
				fmt.Fprintf(w, "           Round trip: avg %s, max %s\n",
					formatDuration(s.stats.AverageRTT()), formatDuration(s.stats.MaxRTT))
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
