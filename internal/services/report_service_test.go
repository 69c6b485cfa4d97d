package services

import "testing"

type stubReportStore struct {
	reports []*Report
}

func (s *stubReportStore) AddReport(r *Report) error {
	s.reports = append([]*Report{r}, s.reports...)
	return nil
}

func (s *stubReportStore) GetReport(id string) (*Report, error) {
	for _, r := range s.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubReportStore) ListReports(soldierID string) ([]*Report, error) {
	var out []*Report
	for _, r := range s.reports {
		if r.SoldierID == soldierID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestReportService(store *stubReportStore) (*ReportService, *ProgressionService) {
	prog := newTestProgressionService(newStubProgressionStore())
	svc := NewReportService(store, prog)
	svc.now = prog.now
	n := 0
	svc.idGen = func(int) string {
		n++
		return "rp" + string(rune('0'+n))
	}
	return svc, prog
}

func TestReportSubmitPaysXP(t *testing.T) {
	store := &stubReportStore{}
	svc, prog := newTestReportService(store)

	r, err := svc.Submit("s1", "m-orientation", "First patrol", "Went loud early, recovered.", 4)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.ID == "" || r.MissionID != "m-orientation" {
		t.Fatalf("unexpected report: %+v", r)
	}
	p, _ := prog.Get("s1")
	if p.XP != reportXP {
		t.Fatalf("xp = %d, want %d", p.XP, reportXP)
	}
	// a second, distinct report earns again
	if _, err := svc.Submit("s1", "", "Second patrol", "Clean run.", 5); err != nil {
		t.Fatalf("submit: %v", err)
	}
	p, _ = prog.Get("s1")
	if p.XP != 2*reportXP {
		t.Fatalf("xp = %d, want %d", p.XP, 2*reportXP)
	}
}

func TestReportSubmitValidation(t *testing.T) {
	svc, _ := newTestReportService(&stubReportStore{})
	cases := []struct{ title, summary string; rating int }{
		{"", "summary", 3},
		{"title", "", 3},
		{"title", "summary", 6},
	}
	for _, c := range cases {
		_, err := svc.Submit("s1", "", c.title, c.summary, c.rating)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorInvalid {
			t.Fatalf("%+v: want invalid, got %v", c, err)
		}
	}
}

func TestReportOwnership(t *testing.T) {
	store := &stubReportStore{}
	svc, _ := newTestReportService(store)
	r, err := svc.Submit("s1", "", "Mine", "Only mine.", 0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Get("s1", r.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	_, err = svc.Get("s2", r.ID)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("want not_found, got %v", err)
	}
}

func TestReportListNewestFirst(t *testing.T) {
	store := &stubReportStore{}
	svc, _ := newTestReportService(store)
	first, _ := svc.Submit("s1", "", "One", "a", 0)
	second, _ := svc.Submit("s1", "", "Two", "b", 0)
	reports, err := svc.List("s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 2 || reports[0].ID != second.ID || reports[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", reports)
	}
}
