package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// ServiceName is the fixed service name attached to every shipped record.
const ServiceName = "harbor-datadog-logs"

// Region selects the Datadog intake site.
type Region string

const (
	RegionUS1 Region = "US1"
	RegionUS3 Region = "US3"
	RegionUS5 Region = "US5"
	RegionEU  Region = "EU"
	RegionAP1 Region = "AP1"
)

var intakeEndpoints = map[Region]string{
	RegionUS1: "https://http-intake.logs.datadoghq.com/api/v2/logs",
	RegionUS3: "https://http-intake.logs.us3.datadoghq.com/api/v2/logs",
	RegionUS5: "https://http-intake.logs.us5.datadoghq.com/api/v2/logs",
	RegionEU:  "https://http-intake.logs.datadoghq.eu/api/v2/logs",
	RegionAP1: "https://http-intake.logs.ap1.datadoghq.com/api/v2/logs",
}

// DatadogOptions configures the remote shipping sink.
type DatadogOptions struct {
	// Service is the service name attached to every record.
	Service string
	// APIKey authenticates against the intake endpoint.
	APIKey string
	// Region selects the intake site. Defaults to US1.
	Region Region
	// Tags is the comma-joined tag string shipped with every record.
	Tags string
	// Endpoint overrides the region intake URL. Used by tests.
	Endpoint string
	// FlushInterval bounds how long a record may sit in the buffer.
	FlushInterval time.Duration
	// MaxBatchSize is the number of records per shipment.
	MaxBatchSize int
	// BufferSize is the capacity of the in-flight record buffer.
	BufferSize int
}

func (o *DatadogOptions) applyDefaults() {
	if o.Service == "" {
		o.Service = ServiceName
	}
	if o.Region == "" {
		o.Region = RegionUS1
	}
	if o.Endpoint == "" {
		o.Endpoint = intakeEndpoints[o.Region]
	}
	if o.FlushInterval == 0 {
		o.FlushInterval = 2 * time.Second
	}
	if o.MaxBatchSize == 0 {
		o.MaxBatchSize = 50
	}
	if o.BufferSize == 0 {
		o.BufferSize = 256
	}
}

// DatadogSink forwards structured log records to the Datadog logs intake.
// Delivery is asynchronous and best-effort: Write never blocks the logging
// call path, and records are dropped when the buffer is full or the intake
// rejects a shipment.
type DatadogSink struct {
	opts   DatadogOptions
	client *http.Client

	records chan []byte
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
}

// NewDatadogSink creates the sink and starts its forwarder goroutine.
func NewDatadogSink(opts DatadogOptions) *DatadogSink {
	opts.applyDefaults()

	s := &DatadogSink{
		opts:    opts,
		client:  &http.Client{Timeout: 10 * time.Second},
		records: make(chan []byte, opts.BufferSize),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.forward()
	return s
}

// Write accepts one structured record per call. The buffer handed in is
// reused by zerolog, so it is copied before being queued.
func (s *DatadogSink) Write(p []byte) (int, error) {
	rec := make([]byte, len(p))
	copy(rec, p)

	select {
	case s.records <- rec:
	default:
		// buffer full: best-effort, drop
	}
	return len(p), nil
}

// Close flushes buffered records and stops the forwarder. Safe to call
// multiple times.
func (s *DatadogSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
}

func (s *DatadogSink) forward() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.opts.FlushInterval)
	defer ticker.Stop()

	batch := make([][]byte, 0, s.opts.MaxBatchSize)
	for {
		select {
		case rec := <-s.records:
			batch = append(batch, rec)
			if len(batch) >= s.opts.MaxBatchSize {
				s.ship(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.ship(batch)
				batch = batch[:0]
			}
		case <-s.done:
			// drain whatever is still queued, then final shipment
			for {
				select {
				case rec := <-s.records:
					batch = append(batch, rec)
				default:
					if len(batch) > 0 {
						s.ship(batch)
					}
					return
				}
			}
		}
	}
}

type intakeEntry struct {
	Message string `json:"message"`
	Service string `json:"service"`
	Source  string `json:"ddsource"`
	Tags    string `json:"ddtags"`
}

// ship posts one batch to the intake endpoint. Failures are swallowed:
// delivery is best-effort and must never feed back into the log path.
func (s *DatadogSink) ship(batch [][]byte) {
	entries := make([]intakeEntry, 0, len(batch))
	for _, rec := range batch {
		entries = append(entries, intakeEntry{
			Message: string(bytes.TrimRight(rec, "\n")),
			Service: s.opts.Service,
			Source:  "go",
			Tags:    s.opts.Tags,
		})
	}

	body, err := json.Marshal(entries)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, s.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("DD-API-KEY", s.opts.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
