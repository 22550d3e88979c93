package cache

import "fmt"

// Status is the render state of a cached segment.
type Status uint8

const (
	// LazyInitialized nodes have not been requested from the server.
	LazyInitialized Status = iota
	// DataFetch nodes have a request in flight.
	DataFetch
	// Ready nodes hold rendered content.
	Ready
)

var statusNames = [...]string{
	LazyInitialized: "LAZY",
	DataFetch:       "DATA_FETCH_IN_PROGRESS",
	Ready:           "READY",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) Pending() bool {
	return s == LazyInitialized || s == DataFetch
}

func ParseStatus(v string) (Status, error) {
	for i, name := range statusNames {
		if name == v {
			return Status(i), nil
		}
	}
	switch v {
	case "", "lazy":
		return LazyInitialized, nil
	case "fetch", "data-fetch":
		return DataFetch, nil
	case "ready":
		return Ready, nil
	}
	return 0, fmt.Errorf("unknown status %q", v)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(d []byte) error {
	v, err := ParseStatus(string(d))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
