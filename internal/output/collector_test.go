package output

import (
	"errors"
	"testing"

	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector() *Collector {
	return NewCollector(CollectorOptions{
		ServiceURL:    "https://ucm.example.com/cs/idcplg",
		Username:      "bob",
		ManifestFile:  "/data/MANIFEST.MF",
		ManifestDocID: "999999",
		ManifestLines: 4,
	})
}

func TestCollector_SuccessfulRun(t *testing.T) {
	c := newTestCollector()
	batch := domain.NewDeletionBatch([]domain.ManifestEntry{{FileName: "foo.csv", DocID: "100001"}}, "999999")

	c.Plan(batch)
	c.Record(batch.Entries[0], "200", nil)
	c.Record(batch.Entries[1], "200", nil)
	c.Finish(domain.Success(2))

	r := c.Report()
	assert.Equal(t, "success", r.Outcome)
	assert.Equal(t, 2, r.Attempted)
	assert.Equal(t, 2, r.Completed)
	assert.Empty(t, r.Error)
	assert.Equal(t, 4, r.ManifestLines)
	assert.Len(t, r.Planned, 2)
	require.Len(t, r.Requests, 2)
	assert.Equal(t, RequestRecord{FileName: "MANIFEST.MF", DocID: "999999", Status: "200"}, r.Requests[1])
	assert.False(t, r.GeneratedAt.IsZero())
}

func TestCollector_StatusFailure(t *testing.T) {
	c := newTestCollector()
	statusErr := &domain.StatusError{DocID: "100001", Status: "500", Attempted: 1}

	c.Record(domain.ManifestEntry{FileName: "foo.csv", DocID: "100001"}, "500", statusErr)
	c.Finish(domain.StatusFailure(statusErr))

	r := c.Report()
	assert.Equal(t, "status_failure", r.Outcome)
	assert.Equal(t, "500", r.Status)
	assert.Equal(t, 1, r.Attempted)
	assert.Equal(t, 0, r.Completed)
	assert.Contains(t, r.Error, "returned status 500")
	assert.Contains(t, r.Requests[0].Error, "returned status 500")
}

func TestCollector_Conclude(t *testing.T) {
	c := newTestCollector()
	assert.Empty(t, c.Report().Outcome)

	c.Conclude("connection_failure", errors.New("refused"))

	r := c.Report()
	assert.Equal(t, "connection_failure", r.Outcome)
	assert.Equal(t, "refused", r.Error)
	assert.NotNil(t, r.Requests)
	assert.Empty(t, r.Requests)
}

func TestCollector_ReportIsCopy(t *testing.T) {
	c := newTestCollector()
	c.Record(domain.ManifestEntry{DocID: "1"}, "200", nil)

	r := c.Report()
	r.Requests[0].DocID = "changed"

	assert.Equal(t, "1", c.Report().Requests[0].DocID)
}

func TestCollector_ConcludePlanned(t *testing.T) {
	c := newTestCollector()
	c.Plan(domain.NewDeletionBatch(nil, "999999"))
	c.Conclude(OutcomePlanned, nil)

	r := c.Report()
	assert.Equal(t, "planned", r.Outcome)
	assert.Empty(t, r.Error)
	require.Len(t, r.Planned, 1)
	assert.Equal(t, domain.ManifestFileName, r.Planned[0].FileName)
}
