// Package db implements the api.Store surface on sqlite.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bastionhq/bastion/internal/api"
	"github.com/bastionhq/bastion/internal/services"
)

type SQLiteStore struct {
	db *sql.DB
	// serializes read-modify-write cycles on the progression ledger
	progMu sync.Mutex
}

var _ api.Store = (*SQLiteStore)(nil)

// Open opens (creating if needed) the database at path, applies pragmas and
// runs migrations.
func Open(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	store, err := NewSQLiteStore(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := RunMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return store, nil
}

func NewSQLiteStore(conn *sql.DB) (*SQLiteStore, error) {
	if conn == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := conn.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: conn}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// --- helpers ---

func toNullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func encodeJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeJSON(ns sql.NullString, v any) error {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), v)
}

func encodeTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func decodeTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}

// --- soldiers ---

func (s *SQLiteStore) AddSoldier(u *services.Soldier) error {
	_, err := s.db.Exec(
		`INSERT INTO soldiers (id, email, callsign, display_name, pass_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Callsign, toNullString(u.DisplayName), u.PassHash, encodeTime(u.CreatedAt),
	)
	return err
}

func (s *SQLiteStore) UpdateSoldier(u *services.Soldier) error {
	_, err := s.db.Exec(
		`UPDATE soldiers SET email = ?, callsign = ?, display_name = ?, pass_hash = ? WHERE id = ?`,
		u.Email, u.Callsign, toNullString(u.DisplayName), u.PassHash, u.ID,
	)
	return err
}

func (s *SQLiteStore) scanSoldier(row *sql.Row) (*services.Soldier, error) {
	var u services.Soldier
	var displayName sql.NullString
	var createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.Callsign, &displayName, &u.PassHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.DisplayName = displayName.String
	u.CreatedAt = decodeTime(createdAt)
	return &u, nil
}

func (s *SQLiteStore) GetSoldier(id string) (*services.Soldier, error) {
	row := s.db.QueryRow(`SELECT id, email, callsign, display_name, pass_hash, created_at FROM soldiers WHERE id = ?`, id)
	return s.scanSoldier(row)
}

func (s *SQLiteStore) FindSoldierByEmail(email string) (*services.Soldier, error) {
	row := s.db.QueryRow(`SELECT id, email, callsign, display_name, pass_hash, created_at FROM soldiers WHERE email = ?`, email)
	return s.scanSoldier(row)
}

// --- journal ---

func (s *SQLiteStore) AddJournalEntry(e *services.JournalEntry) error {
	tags, err := encodeJSON(e.Tags)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO journal_entries (id, soldier_id, title, body, mood, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SoldierID, e.Title, toNullString(e.Body), e.Mood, tags, encodeTime(e.CreatedAt), encodeTime(e.UpdatedAt),
	)
	return err
}

func (s *SQLiteStore) UpdateJournalEntry(e *services.JournalEntry) error {
	tags, err := encodeJSON(e.Tags)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(
		`UPDATE journal_entries SET title = ?, body = ?, mood = ?, tags = ?, updated_at = ? WHERE id = ?`,
		e.Title, toNullString(e.Body), e.Mood, tags, encodeTime(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.NewNotFoundError("entry not found")
	}
	return nil
}

func (s *SQLiteStore) DeleteJournalEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.NewNotFoundError("entry not found")
	}
	return nil
}

func scanJournalEntry(rows interface{ Scan(...any) error }) (*services.JournalEntry, error) {
	var e services.JournalEntry
	var body, tags sql.NullString
	var createdAt, updatedAt string
	if err := rows.Scan(&e.ID, &e.SoldierID, &e.Title, &body, &e.Mood, &tags, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.Body = body.String
	if err := decodeJSON(tags, &e.Tags); err != nil {
		return nil, err
	}
	e.CreatedAt = decodeTime(createdAt)
	e.UpdatedAt = decodeTime(updatedAt)
	return &e, nil
}

func (s *SQLiteStore) GetJournalEntry(id string) (*services.JournalEntry, error) {
	row := s.db.QueryRow(`SELECT id, soldier_id, title, body, mood, tags, created_at, updated_at FROM journal_entries WHERE id = ?`, id)
	e, err := scanJournalEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (s *SQLiteStore) ListJournalEntries(soldierID string) ([]*services.JournalEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, soldier_id, title, body, mood, tags, created_at, updated_at FROM journal_entries WHERE soldier_id = ? ORDER BY created_at DESC`,
		soldierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*services.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// --- assessments ---

func (s *SQLiteStore) AddAssessmentResult(r *services.AssessmentResult) error {
	outcome, err := encodeJSON(r.Outcome)
	if err != nil {
		return err
	}
	answers, err := encodeJSON(r.Answers)
	if err != nil {
		return err
	}
	granted := 0
	if r.RewardGranted {
		granted = 1
	}
	_, err = s.db.Exec(
		`INSERT INTO assessment_results (id, soldier_id, assessment_id, outcome, answers, completed_at, reward_granted) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SoldierID, r.AssessmentID, outcome.String, answers, encodeTime(r.CompletedAt), granted,
	)
	return err
}

func (s *SQLiteStore) ListAssessmentResults(soldierID string) ([]*services.AssessmentResult, error) {
	rows, err := s.db.Query(
		`SELECT id, soldier_id, assessment_id, outcome, answers, completed_at, reward_granted FROM assessment_results WHERE soldier_id = ? ORDER BY completed_at DESC`,
		soldierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*services.AssessmentResult
	for rows.Next() {
		var r services.AssessmentResult
		var outcome string
		var answers sql.NullString
		var completedAt string
		var granted int
		if err := rows.Scan(&r.ID, &r.SoldierID, &r.AssessmentID, &outcome, &answers, &completedAt, &granted); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(outcome), &r.Outcome); err != nil {
			return nil, err
		}
		if err := decodeJSON(answers, &r.Answers); err != nil {
			return nil, err
		}
		r.CompletedAt = decodeTime(completedAt)
		r.RewardGranted = granted != 0
		out = append(out, &r)
	}
	return out, rows.Err()
}

// --- zone checks ---

func (s *SQLiteStore) AddZoneCheck(e *services.ZoneCheckEntry) error {
	emotions, err := encodeJSON(e.Emotions)
	if err != nil {
		return err
	}
	rec, err := encodeJSON(e.Recommendation)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO zone_checks (id, soldier_id, date, submitted_at, stress_rating, emotions, upcoming_task, recommendation, performance_outcome, reflection)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SoldierID, e.Date, encodeTime(e.SubmittedAt), e.StressRating, emotions, toNullString(e.UpcomingTask), rec.String, e.PerformanceOutcome, toNullString(e.Reflection),
	)
	return err
}

func (s *SQLiteStore) UpdateZoneCheck(e *services.ZoneCheckEntry) error {
	res, err := s.db.Exec(
		`UPDATE zone_checks SET performance_outcome = ?, reflection = ? WHERE id = ?`,
		e.PerformanceOutcome, toNullString(e.Reflection), e.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.NewNotFoundError("check-in not found")
	}
	return nil
}

func scanZoneCheck(rows interface{ Scan(...any) error }) (*services.ZoneCheckEntry, error) {
	var e services.ZoneCheckEntry
	var emotions, task, reflection sql.NullString
	var rec, submittedAt string
	if err := rows.Scan(&e.ID, &e.SoldierID, &e.Date, &submittedAt, &e.StressRating, &emotions, &task, &rec, &e.PerformanceOutcome, &reflection); err != nil {
		return nil, err
	}
	if err := decodeJSON(emotions, &e.Emotions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rec), &e.Recommendation); err != nil {
		return nil, err
	}
	e.SubmittedAt = decodeTime(submittedAt)
	e.UpcomingTask = task.String
	e.Reflection = reflection.String
	return &e, nil
}

func (s *SQLiteStore) GetZoneCheck(id string) (*services.ZoneCheckEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, soldier_id, date, submitted_at, stress_rating, emotions, upcoming_task, recommendation, performance_outcome, reflection FROM zone_checks WHERE id = ?`,
		id,
	)
	e, err := scanZoneCheck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (s *SQLiteStore) ListZoneChecks(soldierID string) ([]*services.ZoneCheckEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, soldier_id, date, submitted_at, stress_rating, emotions, upcoming_task, recommendation, performance_outcome, reflection FROM zone_checks WHERE soldier_id = ? ORDER BY submitted_at DESC`,
		soldierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*services.ZoneCheckEntry
	for rows.Next() {
		e, err := scanZoneCheck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// --- sleep & caffeine ---

func (s *SQLiteStore) AddSleepLog(l *services.SleepLog) error {
	flags, err := encodeJSON(l.StressFlags)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO sleep_logs (id, soldier_id, start_at, end_at, duration_hours, quality, pain_level, stress_flags) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.SoldierID, encodeTime(l.Start), encodeTime(l.End), l.DurationHours, l.Quality, l.PainLevel, flags,
	)
	return err
}

func (s *SQLiteStore) ListSleepLogs(soldierID string) ([]*services.SleepLog, error) {
	rows, err := s.db.Query(
		`SELECT id, soldier_id, start_at, end_at, duration_hours, quality, pain_level, stress_flags FROM sleep_logs WHERE soldier_id = ? ORDER BY end_at DESC`,
		soldierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*services.SleepLog
	for rows.Next() {
		var l services.SleepLog
		var start, end string
		var flags sql.NullString
		if err := rows.Scan(&l.ID, &l.SoldierID, &start, &end, &l.DurationHours, &l.Quality, &l.PainLevel, &flags); err != nil {
			return nil, err
		}
		if err := decodeJSON(flags, &l.StressFlags); err != nil {
			return nil, err
		}
		l.Start = decodeTime(start)
		l.End = decodeTime(end)
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddCaffeineLog(l *services.CaffeineLog) error {
	_, err := s.db.Exec(
		`INSERT INTO caffeine_logs (id, soldier_id, consumed_at, source, amount_mg) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.SoldierID, encodeTime(l.ConsumedAt), toNullString(l.Source), l.AmountMg,
	)
	return err
}

func (s *SQLiteStore) ListCaffeineLogs(soldierID string) ([]*services.CaffeineLog, error) {
	rows, err := s.db.Query(
		`SELECT id, soldier_id, consumed_at, source, amount_mg FROM caffeine_logs WHERE soldier_id = ? ORDER BY consumed_at DESC`,
		soldierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*services.CaffeineLog
	for rows.Next() {
		var l services.CaffeineLog
		var consumedAt string
		var source sql.NullString
		if err := rows.Scan(&l.ID, &l.SoldierID, &consumedAt, &source, &l.AmountMg); err != nil {
			return nil, err
		}
		l.ConsumedAt = decodeTime(consumedAt)
		l.Source = source.String
		out = append(out, &l)
	}
	return out, rows.Err()
}

// --- squads ---

func (s *SQLiteStore) AddSquad(sq *services.Squad) error {
	_, err := s.db.Exec(
		`INSERT INTO squads (id, name, motto, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		sq.ID, sq.Name, toNullString(sq.Motto), sq.CreatedBy, encodeTime(sq.CreatedAt),
	)
	return err
}

func (s *SQLiteStore) GetSquad(id string) (*services.Squad, error) {
	row := s.db.QueryRow(`SELECT id, name, motto, created_by, created_at FROM squads WHERE id = ?`, id)
	var sq services.Squad
	var motto sql.NullString
	var createdAt string
	err := row.Scan(&sq.ID, &sq.Name, &motto, &sq.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sq.Motto = motto.String
	sq.CreatedAt = decodeTime(createdAt)
	return &sq, nil
}

func (s *SQLiteStore) AddSquadMember(m *services.SquadMember) error {
	_, err := s.db.Exec(
		`INSERT INTO squad_members (squad_id, soldier_id, joined_at) VALUES (?, ?, ?)`,
		m.SquadID, m.SoldierID, encodeTime(m.JoinedAt),
	)
	return err
}

func (s *SQLiteStore) RemoveSquadMember(squadID, soldierID string) error {
	res, err := s.db.Exec(`DELETE FROM squad_members WHERE squad_id = ? AND soldier_id = ?`, squadID, soldierID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.NewNotFoundError("not a member")
	}
	return nil
}

func (s *SQLiteStore) ListSquadMembers(squadID string) ([]*services.SquadMember, error) {
	rows, err := s.db.Query(
		`SELECT m.squad_id, m.soldier_id, u.callsign, m.joined_at
		 FROM squad_members m JOIN soldiers u ON u.id = m.soldier_id
		 WHERE m.squad_id = ? ORDER BY m.joined_at`,
		squadID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*services.SquadMember
	for rows.Next() {
		var m services.SquadMember
		var joinedAt string
		if err := rows.Scan(&m.SquadID, &m.SoldierID, &m.Callsign, &joinedAt); err != nil {
			return nil, err
		}
		m.JoinedAt = decodeTime(joinedAt)
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListSquadsBySoldier(soldierID string) ([]*services.Squad, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.name, s.motto, s.created_by, s.created_at
		 FROM squads s JOIN squad_members m ON m.squad_id = s.id
		 WHERE m.soldier_id = ? ORDER BY m.joined_at`,
		soldierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*services.Squad
	for rows.Next() {
		var sq services.Squad
		var motto sql.NullString
		var createdAt string
		if err := rows.Scan(&sq.ID, &sq.Name, &motto, &sq.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		sq.Motto = motto.String
		sq.CreatedAt = decodeTime(createdAt)
		out = append(out, &sq)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListSquadStandings() ([]services.SquadStanding, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.name, COUNT(m.soldier_id), COALESCE(SUM(p.xp), 0)
		 FROM squads s
		 LEFT JOIN squad_members m ON m.squad_id = s.id
		 LEFT JOIN progressions p ON p.soldier_id = m.soldier_id
		 GROUP BY s.id, s.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []services.SquadStanding
	for rows.Next() {
		var st services.SquadStanding
		if err := rows.Scan(&st.SquadID, &st.Name, &st.Members, &st.TotalXP); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// --- reports ---

func (s *SQLiteStore) AddReport(r *services.Report) error {
	_, err := s.db.Exec(
		`INSERT INTO reports (id, soldier_id, mission_id, title, summary, rating, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SoldierID, toNullString(r.MissionID), r.Title, r.Summary, r.Rating, encodeTime(r.CreatedAt),
	)
	return err
}

func (s *SQLiteStore) GetReport(id string) (*services.Report, error) {
	row := s.db.QueryRow(`SELECT id, soldier_id, mission_id, title, summary, rating, created_at FROM reports WHERE id = ?`, id)
	var r services.Report
	var missionID sql.NullString
	var createdAt string
	err := row.Scan(&r.ID, &r.SoldierID, &missionID, &r.Title, &r.Summary, &r.Rating, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.MissionID = missionID.String
	r.CreatedAt = decodeTime(createdAt)
	return &r, nil
}

func (s *SQLiteStore) ListReports(soldierID string) ([]*services.Report, error) {
	rows, err := s.db.Query(
		`SELECT id, soldier_id, mission_id, title, summary, rating, created_at FROM reports WHERE soldier_id = ? ORDER BY created_at DESC`,
		soldierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*services.Report
	for rows.Next() {
		var r services.Report
		var missionID sql.NullString
		var createdAt string
		if err := rows.Scan(&r.ID, &r.SoldierID, &missionID, &r.Title, &r.Summary, &r.Rating, &createdAt); err != nil {
			return nil, err
		}
		r.MissionID = missionID.String
		r.CreatedAt = decodeTime(createdAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// --- progression ---

func scanProgression(row interface{ Scan(...any) error }) (*services.Progression, error) {
	var p services.Progression
	var unlockables, granted, history sql.NullString
	var updatedAt string
	err := row.Scan(&p.SoldierID, &p.XP, &unlockables, &granted, &history, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(unlockables, &p.Unlockables); err != nil {
		return nil, err
	}
	if err := decodeJSON(granted, &p.GrantedRewards); err != nil {
		return nil, err
	}
	if err := decodeJSON(history, &p.History); err != nil {
		return nil, err
	}
	p.Rank = services.RankFromXP(p.XP)
	return &p, nil
}

func (s *SQLiteStore) GetProgression(soldierID string) (*services.Progression, error) {
	row := s.db.QueryRow(
		`SELECT soldier_id, xp, unlockables, granted_rewards, history, updated_at FROM progressions WHERE soldier_id = ?`,
		soldierID,
	)
	return scanProgression(row)
}

// MutateProgression runs fn inside a transaction and serializes concurrent
// cycles behind a process-wide mutex, so two grants for the same soldier
// can never interleave.
func (s *SQLiteStore) MutateProgression(soldierID string, fn func(p *services.Progression) error) error {
	s.progMu.Lock()
	defer s.progMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRow(
		`SELECT soldier_id, xp, unlockables, granted_rewards, history, updated_at FROM progressions WHERE soldier_id = ?`,
		soldierID,
	)
	p, err := scanProgression(row)
	if err != nil {
		return err
	}
	if p == nil {
		p = &services.Progression{SoldierID: soldierID, Rank: services.RankFromXP(0)}
	}
	if err := fn(p); err != nil {
		return err
	}

	unlockables, err := encodeJSON(p.Unlockables)
	if err != nil {
		return err
	}
	granted, err := encodeJSON(p.GrantedRewards)
	if err != nil {
		return err
	}
	history, err := encodeJSON(p.History)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		`INSERT INTO progressions (soldier_id, xp, unlockables, granted_rewards, history, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(soldier_id) DO UPDATE SET xp = excluded.xp, unlockables = excluded.unlockables,
		 granted_rewards = excluded.granted_rewards, history = excluded.history, updated_at = excluded.updated_at`,
		p.SoldierID, p.XP, unlockables, granted, history, encodeTime(time.Now()),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}
