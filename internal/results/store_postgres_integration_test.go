//go:build integration

package results_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"ekoshield/internal/results"
	"ekoshield/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *results.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())

	var err error
	s.store, err = results.NewPostgresStore(context.Background(), s.postgres.DB)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "verification_results")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) seed() []results.Result {
	ctx := context.Background()
	verified := true
	fixtures := []results.Result{
		{
			Service:   "PAN Verification",
			Category:  "Employment Verification",
			Status:    results.StatusSuccess,
			InputData: map[string]string{"pan_number": "ABCDE1234F"},
			Response:  &results.Response{Verified: &verified},
		},
		{
			Service:   "GSTIN Verification",
			Category:  "GSTIN Verification",
			Status:    results.StatusFailed,
			InputData: map[string]string{"gstin_number": "22AAAAA0000A1Z5"},
			Error:     "API error: 500",
		},
	}
	var out []results.Result
	for _, r := range fixtures {
		stored, err := s.store.Append(ctx, r)
		s.Require().NoError(err)
		out = append(out, stored)
	}
	return out
}

func (s *PostgresStoreSuite) TestAppendAndList() {
	ctx := context.Background()
	seeded := s.seed()

	listed, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)

	s.Equal(seeded[0].ID, listed[0].ID)
	s.Equal("PAN Verification", listed[0].Service)
	s.Equal(results.StatusSuccess, listed[0].Status)
	s.Equal(map[string]string{"pan_number": "ABCDE1234F"}, listed[0].InputData)
	s.Require().NotNil(listed[0].Response)
	s.Require().NotNil(listed[0].Response.Verified)
	s.True(*listed[0].Response.Verified)

	s.Equal("API error: 500", listed[1].Error)
	s.Nil(listed[1].Response)
}

func (s *PostgresStoreSuite) TestAppendAllocatesUniqueIDs() {
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 20; i++ {
		r, err := s.store.Append(ctx, results.Result{
			Service:  "PAN Verification",
			Category: "Employment Verification",
			Status:   results.StatusSuccess,
		})
		s.Require().NoError(err)
		s.False(seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
	}
}

func (s *PostgresStoreSuite) TestQueryFilters() {
	ctx := context.Background()
	s.seed()

	s.Run("case-insensitive search", func() {
		out, err := s.store.Query(ctx, results.Filter{Search: "gstin"})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal("GSTIN Verification", out[0].Service)
	})

	s.Run("status filter", func() {
		out, err := s.store.Query(ctx, results.Filter{Status: string(results.StatusFailed)})
		s.Require().NoError(err)
		s.Len(out, 1)
	})

	s.Run("all sentinel equals no filter", func() {
		filtered, err := s.store.Query(ctx, results.Filter{Category: results.FilterAll, Status: results.FilterAll})
		s.Require().NoError(err)
		unfiltered, err := s.store.Query(ctx, results.Filter{})
		s.Require().NoError(err)
		s.Equal(unfiltered, filtered)
	})
}

func (s *PostgresStoreSuite) TestDeleteAndClear() {
	ctx := context.Background()
	seeded := s.seed()

	deleted, err := s.store.Delete(ctx, []int64{seeded[0].ID, 999})
	s.Require().NoError(err)
	s.Equal(1, deleted)

	remaining, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal(seeded[1].ID, remaining[0].ID)

	s.Require().NoError(s.store.Clear(ctx))
	remaining, err = s.store.List(ctx)
	s.Require().NoError(err)
	s.Empty(remaining)
}
