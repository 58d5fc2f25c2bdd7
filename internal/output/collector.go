package output

import (
	"sync"
	"time"

	"github.com/quantmind-br/ucmpurge/internal/domain"
)

// OutcomePlanned marks a dry run that stopped after building the batch
const OutcomePlanned = "planned"

// Report is the machine-readable record of one run
type Report struct {
	GeneratedAt   time.Time              `json:"generated_at" yaml:"generated_at"`
	ServiceURL    string                 `json:"service_url" yaml:"service_url"`
	Username      string                 `json:"username" yaml:"username"`
	ManifestFile  string                 `json:"manifest_file" yaml:"manifest_file"`
	ManifestDocID string                 `json:"manifest_doc_id" yaml:"manifest_doc_id"`
	ManifestLines int                    `json:"manifest_lines" yaml:"manifest_lines"`
	DryRun        bool                   `json:"dry_run" yaml:"dry_run"`
	Outcome       string                 `json:"outcome" yaml:"outcome"`
	Attempted     int                    `json:"attempted" yaml:"attempted"`
	Completed     int                    `json:"completed" yaml:"completed"`
	Status        string                 `json:"status,omitempty" yaml:"status,omitempty"`
	Error         string                 `json:"error,omitempty" yaml:"error,omitempty"`
	Planned       []domain.ManifestEntry `json:"planned,omitempty" yaml:"planned,omitempty"`
	Requests      []RequestRecord        `json:"requests" yaml:"requests"`
}

// RequestRecord is one delete request as seen by the run
type RequestRecord struct {
	FileName string `json:"file_name" yaml:"file_name"`
	DocID    string `json:"doc_id" yaml:"doc_id"`
	Status   string `json:"status,omitempty" yaml:"status,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Collector accumulates request records while a batch runs
type Collector struct {
	mu     sync.RWMutex
	report Report
}

// CollectorOptions contains the run context recorded in the report
type CollectorOptions struct {
	ServiceURL    string
	Username      string
	ManifestFile  string
	ManifestDocID string
	ManifestLines int
	DryRun        bool
}

// NewCollector creates a collector for one run
func NewCollector(opts CollectorOptions) *Collector {
	return &Collector{
		report: Report{
			ServiceURL:    opts.ServiceURL,
			Username:      opts.Username,
			ManifestFile:  opts.ManifestFile,
			ManifestDocID: opts.ManifestDocID,
			ManifestLines: opts.ManifestLines,
			DryRun:        opts.DryRun,
			Requests:      make([]RequestRecord, 0),
		},
	}
}

// Plan records the batch that will be sent
func (c *Collector) Plan(batch domain.DeletionBatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Planned = append([]domain.ManifestEntry(nil), batch.Entries...)
}

// Record adds one request outcome
func (c *Collector) Record(entry domain.ManifestEntry, status string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := RequestRecord{
		FileName: entry.FileName,
		DocID:    entry.DocID,
		Status:   status,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	c.report.Requests = append(c.report.Requests, rec)
}

// Finish stores the final result of the run
func (c *Collector) Finish(result domain.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.report.Outcome = result.Kind.String()
	c.report.Attempted = result.Attempted
	c.report.Completed = result.Completed()
	c.report.Status = result.Status
	if result.Err != nil {
		c.report.Error = result.Err.Error()
	}
}

// Conclude stores an outcome reached without running the delete sequence
func (c *Collector) Conclude(outcome string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.report.Outcome = outcome
	if err != nil {
		c.report.Error = err.Error()
	}
}

// Report returns a copy of the report stamped with the current time
func (c *Collector) Report() *Report {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r := c.report
	r.Requests = append([]RequestRecord(nil), c.report.Requests...)
	if r.Requests == nil {
		r.Requests = make([]RequestRecord, 0)
	}
	r.GeneratedAt = time.Now().UTC()
	return &r
}
