package verification

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"ekoshield/internal/catalog"
	"ekoshield/pkg/apierrors"
)

// bulkWorkers bounds the provider fan-out for CSV uploads. The wallet's
// check-then-apply debit is lock-serialized, so parallel rows cannot
// overdraw the balance.
const bulkWorkers = 4

// SubmitBulk dispatches one verification per CSV row for a single service.
// The first row is the header naming the input fields; row order is
// preserved in the outcome even though rows run concurrently.
func (s *Service) SubmitBulk(ctx context.Context, serviceID string, csvData io.Reader) (SubmitOutcome, error) {
	var outcome SubmitOutcome

	if _, ok := catalog.Lookup(serviceID); !ok {
		return outcome, apierrors.New(apierrors.CodeBadRequest, fmt.Sprintf("unknown verification service %q", serviceID))
	}

	client, err := s.newClient(ctx)
	if err != nil {
		return outcome, err
	}

	reader := csv.NewReader(csvData)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return outcome, apierrors.Wrap(err, apierrors.CodeBadRequest, "invalid CSV file")
	}
	if len(records) < 2 {
		return outcome, apierrors.New(apierrors.CodeBadRequest, "CSV needs a header row and at least one data row")
	}

	header := records[0]
	rows := records[1:]

	partials := make([]SubmitOutcome, len(rows))
	var mu sync.Mutex
	var aborted error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkWorkers)
	for i, row := range rows {
		g.Go(func() error {
			fields := make(map[string]string, len(header))
			for j, name := range header {
				if j < len(row) {
					fields[name] = row[j]
				}
			}
			item := ServiceRequest{ServiceID: serviceID, Fields: fields}
			if err := s.dispatchOne(gctx, client, item, &partials[i]); err != nil {
				mu.Lock()
				if aborted == nil {
					aborted = err
				}
				mu.Unlock()
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, p := range partials {
		outcome.Results = append(outcome.Results, p.Results...)
		outcome.Skipped = append(outcome.Skipped, p.Skipped...)
		outcome.Notifications = append(outcome.Notifications, p.Notifications...)
	}
	if aborted != nil {
		return outcome, apierrors.Wrap(aborted, apierrors.CodeInternal, "bulk verification aborted")
	}
	return outcome, nil
}
