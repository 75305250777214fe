// Package journal records game events to SQLite for offline analysis. It is
// append-only and cannot restore a game.
package journal

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mitchelldurbincs/CivSim/internal/game/events"
)

// EventRow is one journaled event
type EventRow struct {
	ID       int64  `db:"id"`
	GameID   string `db:"game_id"`
	Turn     int    `db:"turn"`
	Type     string `db:"type"`
	PlayerID int    `db:"player_id"`
	Payload  string `db:"payload"`
}

// TurnRow summarizes one player at the end of their turn
type TurnRow struct {
	GameID       string `db:"game_id"`
	Turn         int    `db:"turn"`
	PlayerID     int    `db:"player_id"`
	Units        int    `db:"units"`
	Cities       int    `db:"cities"`
	Population   int    `db:"population"`
	Technologies int    `db:"technologies"`
	Science      int    `db:"science"`
	Gold         int    `db:"gold"`
	Culture      int    `db:"culture"`
	Government   string `db:"government"`
}

// Journal is an event bus subscriber writing to SQLite
type Journal struct {
	conn   *sqlx.DB
	logger zerolog.Logger
	failed int
}

// Open opens or creates the journal database at path. ":memory:" works for
// tests.
func Open(path string, logger zerolog.Logger) (*Journal, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// a second connection to :memory: would see an empty database
	conn.SetMaxOpenConns(1)

	j := &Journal{
		conn:   conn,
		logger: logger.With().Str("component", "Journal").Logger(),
	}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return j, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		type TEXT NOT NULL,
		player_id INTEGER NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turns (
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		player_id INTEGER NOT NULL,
		units INTEGER NOT NULL,
		cities INTEGER NOT NULL,
		population INTEGER NOT NULL,
		technologies INTEGER NOT NULL,
		science INTEGER NOT NULL,
		gold INTEGER NOT NULL,
		culture INTEGER NOT NULL,
		government TEXT NOT NULL,
		PRIMARY KEY (game_id, turn, player_id)
	);

	CREATE INDEX IF NOT EXISTS idx_events_game_turn ON events(game_id, turn);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// ID implements events.Subscriber
func (j *Journal) ID() string { return "journal" }

// InterestedIn implements events.Subscriber. Selection and blink events are
// UI noise and not recorded.
func (j *Journal) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeUnitSelected, events.TypeUnitDeselected, events.TypeUnitBlink:
		return false
	}
	return true
}

// HandleEvent implements events.Subscriber. Write failures are logged and
// counted; they never reach the engine.
func (j *Journal) HandleEvent(ev events.Event) {
	if err := j.Record(ev); err != nil {
		j.failed++
		j.logger.Error().Err(err).Str("event_type", ev.Type()).Msg("Failed to journal event")
	}
}

// Failures returns how many events could not be written
func (j *Journal) Failures() int { return j.failed }

// Record writes ev, and a turn summary for TurnEnded events
func (j *Journal) Record(ev events.Event) error {
	payload, err := json.Marshal(payloadOf(ev))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Type(), err)
	}

	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	meta := ev.Meta()
	if _, err := tx.Exec(`INSERT INTO events (game_id, turn, type, player_id, payload) VALUES (?, ?, ?, ?, ?)`,
		ev.GameID(), meta.Turn, ev.Type(), meta.PlayerID, string(payload)); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	if te, ok := ev.(*events.TurnEndedEvent); ok {
		if row, ok := summarize(te); ok {
			if _, err := tx.NamedExec(`INSERT OR REPLACE INTO turns
				(game_id, turn, player_id, units, cities, population, technologies, science, gold, culture, government)
				VALUES (:game_id, :turn, :player_id, :units, :cities, :population, :technologies, :science, :gold, :culture, :government)`, row); err != nil {
				return fmt.Errorf("insert turn: %w", err)
			}
		}
	}

	return tx.Commit()
}

// payloadOf drops the full state snapshot from lifecycle events
func payloadOf(ev events.Event) any {
	switch e := ev.(type) {
	case *events.TurnEndedEvent:
		return struct {
			PreviousPlayer  int `json:"previous_player"`
			CurrentPlayerID int `json:"current_player"`
		}{e.PreviousPlayer, e.State.CurrentPlayerID}
	case *events.GameInitializedEvent:
		return struct {
			Width   int `json:"width"`
			Height  int `json:"height"`
			Players int `json:"players"`
		}{e.State.Width, e.State.Height, len(e.State.Players)}
	}
	return ev
}

// summarize builds the turn row of the player whose turn just ended. The
// snapshot turn may already have advanced past the round boundary, so the
// row is keyed by the turn that player actually played.
func summarize(e *events.TurnEndedEvent) (TurnRow, bool) {
	s := &e.State
	if e.PreviousPlayer < 0 || e.PreviousPlayer >= len(s.Players) {
		return TurnRow{}, false
	}
	p := s.Players[e.PreviousPlayer]

	turn := s.Turn
	if s.CurrentPlayerID <= e.PreviousPlayer {
		turn--
	}

	row := TurnRow{
		GameID:       e.GameID(),
		Turn:         turn,
		PlayerID:     p.ID,
		Units:        len(s.UnitsOf(p.ID)),
		Technologies: len(p.Technologies),
		Science:      p.Science,
		Gold:         p.Gold,
		Culture:      p.Culture,
		Government:   string(p.Government),
	}
	for _, c := range s.CitiesOf(p.ID) {
		row.Cities++
		row.Population += c.Population
	}
	return row, true
}

// Events returns the journaled events of a game in insertion order
func (j *Journal) Events(gameID string) ([]EventRow, error) {
	var rows []EventRow
	err := j.conn.Select(&rows,
		"SELECT id, game_id, turn, type, player_id, payload FROM events WHERE game_id = ? ORDER BY id", gameID)
	return rows, err
}

// CountByType returns how many events of each type a game produced
func (j *Journal) CountByType(gameID string) (map[string]int, error) {
	var rows []struct {
		Type  string `db:"type"`
		Count int    `db:"n"`
	}
	if err := j.conn.Select(&rows,
		"SELECT type, COUNT(*) AS n FROM events WHERE game_id = ? GROUP BY type", gameID); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Type] = r.Count
	}
	return out, nil
}

// Turns returns the turn summaries of a player ordered by turn
func (j *Journal) Turns(gameID string, playerID int) ([]TurnRow, error) {
	var rows []TurnRow
	err := j.conn.Select(&rows,
		`SELECT game_id, turn, player_id, units, cities, population, technologies, science, gold, culture, government
		FROM turns WHERE game_id = ? AND player_id = ? ORDER BY turn`, gameID, playerID)
	return rows, err
}
