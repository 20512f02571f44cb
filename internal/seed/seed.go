// Package seed synthesizes demo records and reseeds the sandbox store.
// Generated histories are graph-consistent: every step follows an edge of
// the status graph, so demo data satisfies the same invariants as real
// data.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mjcarter/shortlist/internal/graph"
	"github.com/mjcarter/shortlist/internal/model"
	"github.com/mjcarter/shortlist/internal/store"
)

// DefaultSeed keeps demo datasets reproducible across reseeds.
const DefaultSeed int64 = 20250601

var companies = []string{
	"Acme Corp", "Globex", "Initech", "Umbrella Labs", "Stark Industries",
	"Wayne Enterprises", "Hooli", "Pied Piper", "Vandelay Industries", "Wonka Tech",
}

var titles = []string{
	"Backend Engineer", "Platform Engineer", "SRE", "Data Engineer",
	"Staff Engineer", "Engineering Manager", "DevOps Engineer",
}

var methods = []string{"Company website", "Referral", "LinkedIn", "Recruiter"}

var locations = []string{"Remote", "Berlin", "Lisbon", "Amsterdam", "London"}

// Generate synthesizes n records with ids 1..n. Histories start at
// Bookmarked or Applied and random-walk the status graph backwards in
// time from now, so recent records look recent.
func Generate(n int, seedVal int64, now time.Time) []*model.ApplicationRecord {
	rng := rand.New(rand.NewSource(seedVal))

	records := make([]*model.ApplicationRecord, 0, n)
	for i := 0; i < n; i++ {
		created := now.AddDate(0, 0, -rng.Intn(90)-1)
		r := &model.ApplicationRecord{
			ID:                int64(i + 1),
			CompanyName:       companies[rng.Intn(len(companies))],
			JobTitle:          titles[rng.Intn(len(titles))],
			JobType:           "Full-time",
			ApplicationMethod: methods[rng.Intn(len(methods))],
			Rating:            rng.Intn(6),
			Location:          locations[rng.Intn(len(locations))],
		}

		status := model.StatusApplied
		if rng.Intn(4) == 0 {
			status = model.StatusBookmarked
		}
		ts := created
		r.StatusHistory = []model.HistoryEntry{{Status: status, Timestamp: ts}}

		// Walk up to three edges, stopping early at dead ends. Stop
		// before the Archived edge so demo lists stay populated.
		for step := 0; step < 3; step++ {
			next := graph.Next(status)
			if len(next) == 0 {
				break
			}
			status = next[rng.Intn(len(next))]
			if status == model.StatusArchived {
				break
			}
			ts = ts.Add(time.Duration(rng.Intn(7)+1) * 24 * time.Hour)
			if ts.After(now) {
				break
			}
			entry := model.HistoryEntry{Status: status, Timestamp: ts}
			if status == model.StatusInterviewScheduled {
				dt := ts.AddDate(0, 0, rng.Intn(14)+1)
				entry.InterviewDateTime = &dt
				entry.InterviewLocation = locations[rng.Intn(len(locations))]
				entry.InterviewType = model.InterviewRemote
				r.InterviewDateTime = &dt
				r.InterviewLocation = entry.InterviewLocation
			}
			r.StatusHistory = append(r.StatusHistory, entry)
		}

		if r.CurrentStatus() != model.StatusInterviewScheduled {
			r.InterviewDateTime = nil
			r.InterviewLocation = ""
		}
		records = append(records, r)
	}
	return records
}

// Reseed wipes the store and inserts records. The store's own ClearAll
// guard restricts this to the sandbox; a live store is never touched.
func Reseed(ctx context.Context, s *store.Store, records []*model.ApplicationRecord) error {
	if err := s.ClearAll(ctx); err != nil {
		return fmt.Errorf("reseed: %w", err)
	}
	for _, r := range records {
		if err := s.Add(ctx, r); err != nil {
			return fmt.Errorf("reseed record %d: %w", r.ID, err)
		}
	}
	return nil
}
