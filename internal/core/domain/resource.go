package domain

import "time"

type ResourceType string

const (
	ResourceZones   ResourceType = "zones"
	ResourceDevices ResourceType = "devices"
	ResourceIssues  ResourceType = "issues"
)

func (rt ResourceType) String() string {
	return string(rt)
}

func (rt ResourceType) Valid() bool {
	switch rt {
	case ResourceZones, ResourceDevices, ResourceIssues:
		return true
	}
	return false
}

type SourceKind string

const (
	SourceKindCloudV1  SourceKind = "cloud_v1"
	SourceKindLocalV3  SourceKind = "local_v3"
	SourceKindGHClient SourceKind = "ghclient"
)

func (sk SourceKind) String() string {
	return string(sk)
}

// RawResponse is the uninterpreted body captured from one source for one
// resource type. It is owned by the fetcher that produced it and must not
// be mutated after capture.
type RawResponse struct {
	SourceLabel  string
	ResourceType ResourceType
	Body         []byte
	CapturedAt   time.Time
}

// CanonicalDocument is the deterministic textual form of a parsed response:
// sorted keys, fixed indentation, float leaves truncated to integers. Two
// documents with identical logical content have byte-identical Text.
type CanonicalDocument struct {
	SourceLabel  string
	ResourceType ResourceType
	Text         string
}
