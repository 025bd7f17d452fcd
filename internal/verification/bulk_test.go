package verification

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, r *http.Request) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func (s *VerificationSuite) TestSubmitBulk() {
	ctx := context.Background()

	csvData := strings.NewReader(
		"pan_number,name\n" +
			"ABCDE1234F,Ravi Kumar\n" +
			"FGHIJ5678K,Meena Devi\n" +
			"LMNOP9012Q,Arun Singh\n")

	outcome, err := s.service.SubmitBulk(ctx, "pan", csvData)
	s.Require().NoError(err)

	s.Equal(int64(3), s.calls.Load())
	s.Require().Len(outcome.Results, 3)
	s.Equal("ABCDE1234F", outcome.Results[0].InputData["pan_number"])
	s.Equal("FGHIJ5678K", outcome.Results[1].InputData["pan_number"])
	s.Equal("LMNOP9012Q", outcome.Results[2].InputData["pan_number"])
	s.Equal(97, s.wallet.Balance(ctx))
}

func (s *VerificationSuite) TestSubmitBulkValidation() {
	ctx := context.Background()

	s.Run("unknown service", func() {
		_, err := s.service.SubmitBulk(ctx, "no-such-service", strings.NewReader("a\nb\n"))
		s.Error(err)
	})

	s.Run("header only", func() {
		_, err := s.service.SubmitBulk(ctx, "pan", strings.NewReader("pan_number,name\n"))
		s.Error(err)
	})

	s.Run("malformed csv", func() {
		_, err := s.service.SubmitBulk(ctx, "pan", strings.NewReader("a,\"b\nc\n"))
		s.Error(err)
	})
}

func (s *VerificationSuite) TestSubmitBulkUnderfundedWalletSkipsOverflowRows() {
	ctx := context.Background()
	s.Require().NoError(s.wallet.Reset(ctx, 2))

	csvData := strings.NewReader(
		"pan_number,name\n" +
			"A,one\nB,two\nC,three\nD,four\n")

	outcome, err := s.service.SubmitBulk(ctx, "pan", csvData)
	s.Require().NoError(err)

	s.Len(outcome.Results, 2, "only the funded rows get recorded")
	s.Len(outcome.Skipped, 2)
	s.Equal(0, s.wallet.Balance(ctx))
	s.Equal(int64(2), s.calls.Load())
}
