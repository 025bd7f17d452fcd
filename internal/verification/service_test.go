package verification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"ekoshield/internal/keystore"
	"ekoshield/internal/results"
	"ekoshield/internal/wallet"
	"ekoshield/pkg/apierrors"
)

type VerificationSuite struct {
	suite.Suite
	provider  *httptest.Server
	calls     atomic.Int64
	respond   func(w http.ResponseWriter, r *http.Request)
	keys      *keystore.InMemoryStore
	wallet    *wallet.Service
	sink      *results.InMemoryStore
	resultSvc *results.Service
	service   *Service
}

func TestVerificationSuite(t *testing.T) {
	suite.Run(t, new(VerificationSuite))
}

func (s *VerificationSuite) SetupTest() {
	s.calls.Store(0)
	s.respond = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"pan_status":"E"}`))
	}
	s.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.respond(w, r)
	}))

	s.keys = keystore.NewInMemoryStore("test-key")
	s.sink = results.NewInMemoryStore()

	var err error
	s.wallet, err = wallet.New(wallet.NewInMemoryStore(100))
	s.Require().NoError(err)
	s.resultSvc, err = results.New(s.sink)
	s.Require().NoError(err)
	s.service, err = New(s.keys, s.wallet, s.resultSvc, s.provider.URL)
	s.Require().NoError(err)
}

func (s *VerificationSuite) TearDownTest() {
	s.provider.Close()
}

func (s *VerificationSuite) TestSubmitValidation() {
	ctx := context.Background()

	s.Run("empty selection is rejected", func() {
		_, err := s.service.Submit(ctx, SubmitRequest{})
		s.Error(err)
		s.Equal(apierrors.CodeBadRequest, apierrors.CodeOf(err))
	})

	s.Run("missing API key is rejected before any call", func() {
		s.Require().NoError(s.keys.Clear(ctx))
		_, err := s.service.Submit(ctx, SubmitRequest{Items: []ServiceRequest{{ServiceID: "pan"}}})
		s.Error(err)
		s.Equal(apierrors.CodeBadRequest, apierrors.CodeOf(err))
		s.Contains(apierrors.MessageOf(err), "API key")
		s.Zero(s.calls.Load())
		s.Require().NoError(s.keys.Set(ctx, "test-key"))
	})
}

func (s *VerificationSuite) TestSubmitSuccess() {
	ctx := context.Background()

	outcome, err := s.service.Submit(ctx, SubmitRequest{Items: []ServiceRequest{
		{ServiceID: "pan", Fields: map[string]string{"pan_number": "ABCDE1234F", "name": "Ravi"}},
	}})
	s.Require().NoError(err)

	s.Require().Len(outcome.Results, 1)
	r := outcome.Results[0]
	s.Equal(results.StatusSuccess, r.Status)
	s.Equal("PAN Verification", r.Service)
	s.Equal("Employment Verification", r.Category)
	s.Equal("ABCDE1234F", r.InputData["pan_number"])
	s.Require().NotNil(r.Response)
	s.Require().NotNil(r.Response.Verified)
	s.True(*r.Response.Verified)

	s.Require().Len(outcome.Notifications, 1)
	s.True(outcome.Notifications[0].Success)
	s.Contains(outcome.Notifications[0].Message, "completed successfully")

	s.Equal(99, s.wallet.Balance(ctx), "one call costs one credit")

	stored, err := s.sink.List(ctx)
	s.Require().NoError(err)
	s.Len(stored, 1)
}

func (s *VerificationSuite) TestSubmitRunsEveryServiceInSelectionOrder() {
	ctx := context.Background()

	outcome, err := s.service.Submit(ctx, SubmitRequest{Items: []ServiceRequest{
		{ServiceID: "pan", Fields: map[string]string{"pan_number": "X"}},
		{ServiceID: "gstin", Fields: map[string]string{"gstin_number": "Y"}},
		{ServiceID: "vehicle-rc", Fields: map[string]string{"registration_number": "Z"}},
	}})
	s.Require().NoError(err)

	s.Equal(int64(3), s.calls.Load())
	s.Require().Len(outcome.Results, 3)
	s.Equal("PAN Verification", outcome.Results[0].Service)
	s.Equal("GSTIN Verification", outcome.Results[1].Service)
	s.Equal("Vehicle RC Verification", outcome.Results[2].Service)
	s.Equal(97, s.wallet.Balance(ctx))
}

func (s *VerificationSuite) TestProviderFailureIsRecordedNotFatal() {
	ctx := context.Background()

	failNext := true
	s.respond = func(w http.ResponseWriter, _ *http.Request) {
		if failNext {
			failNext = false
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"registry down"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"Active"}`))
	}

	outcome, err := s.service.Submit(ctx, SubmitRequest{Items: []ServiceRequest{
		{ServiceID: "pan", Fields: map[string]string{"pan_number": "X"}},
		{ServiceID: "gstin", Fields: map[string]string{"gstin_number": "Y"}},
	}})
	s.Require().NoError(err, "a provider failure must not abort the loop")

	s.Require().Len(outcome.Results, 2)
	s.Equal(results.StatusFailed, outcome.Results[0].Status)
	s.Equal("registry down", outcome.Results[0].Error)
	s.Equal(results.StatusSuccess, outcome.Results[1].Status)

	s.Require().Len(outcome.Notifications, 2)
	s.False(outcome.Notifications[0].Success)
	s.Contains(outcome.Notifications[0].Message, "verification failed")
}

func (s *VerificationSuite) TestInsufficientCreditSkipsWithoutResultRecord() {
	ctx := context.Background()
	s.Require().NoError(s.wallet.Reset(ctx, 1))

	outcome, err := s.service.Submit(ctx, SubmitRequest{Items: []ServiceRequest{
		{ServiceID: "pan", Fields: map[string]string{"pan_number": "X"}},
		{ServiceID: "gstin", Fields: map[string]string{"gstin_number": "Y"}},
	}})
	s.Require().NoError(err)

	s.Require().Len(outcome.Results, 1, "only the funded call produces a record")
	s.Equal("PAN Verification", outcome.Results[0].Service)

	s.Require().Len(outcome.Skipped, 1)
	s.Equal("GSTIN Verification", outcome.Skipped[0].Service)
	s.Equal("insufficient credits in wallet", outcome.Skipped[0].Reason)

	s.Equal(int64(1), s.calls.Load(), "the skipped call never reaches the network")
	s.Equal(0, s.wallet.Balance(ctx))

	stored, err := s.sink.List(ctx)
	s.Require().NoError(err)
	s.Len(stored, 1, "credit-denied calls leave no result record")
}

func (s *VerificationSuite) TestUnknownServiceIsSkipped() {
	ctx := context.Background()

	outcome, err := s.service.Submit(ctx, SubmitRequest{Items: []ServiceRequest{
		{ServiceID: "no-such-service"},
		{ServiceID: "pan", Fields: map[string]string{"pan_number": "X"}},
	}})
	s.Require().NoError(err)

	s.Require().Len(outcome.Skipped, 1)
	s.Equal("unknown service", outcome.Skipped[0].Reason)
	s.Len(outcome.Results, 1)
	s.Equal(99, s.wallet.Balance(ctx), "unknown services cost nothing")
}

func (s *VerificationSuite) TestExtraneousFieldsAreNotForwarded() {
	ctx := context.Background()

	var gotBody map[string]string
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		gotBody = decodeBody(s.T(), r)
		_, _ = w.Write([]byte(`{"pan_status":"E"}`))
	}

	_, err := s.service.Submit(ctx, SubmitRequest{Items: []ServiceRequest{
		{ServiceID: "pan", Fields: map[string]string{
			"pan_number": "ABCDE1234F",
			"name":       "Ravi",
			"stray":      "ignored",
		}},
	}})
	s.Require().NoError(err)

	s.Equal("ABCDE1234F", gotBody["pan_number"])
	_, present := gotBody["stray"]
	s.False(present, "payload carries catalog fields only")
}
