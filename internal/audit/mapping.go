package audit

import (
	"encoding/json"

	"github.com/steward-io/steward/pkg/repository"
)

// Documents are stored as a JSONB array of opaque URIs.
func encodeDocuments(docs []string) []byte {
	if docs == nil {
		docs = []string{}
	}
	data, _ := json.Marshal(docs)
	return data
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var (
		e    Entry
		docs []byte
	)

	err := s.Scan(
		&e.ID,
		&e.Timestamp,
		&e.Results,
		&e.StageType,
		&e.PluginName,
		&e.ProcessID,
		&docs,
		&e.ClientID,
		&e.ProcessTypeID,
		&e.Payload,
		&e.TokenUsage.Input,
		&e.TokenUsage.Output,
		&e.TokenUsage.Model,
		&e.ErrorDetail,
	)
	if err != nil {
		return e, err
	}

	if err := json.Unmarshal(docs, &e.Documents); err != nil {
		return e, err
	}

	return e, nil
}
