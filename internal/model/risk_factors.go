package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RiskFactor is one named entry of the service's risk_factors object.
type RiskFactor struct {
	Name        string
	Description string
}

// RiskFactors decodes a JSON object of name -> explanation and keeps the key
// order the service sent it in. A Go map would lose that order.
type RiskFactors []RiskFactor

func (rf *RiskFactors) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*rf = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("risk_factors: expected object, got %v", tok)
	}

	out := RiskFactors{}
	// A repeated key overwrites the earlier value in place, as a map would.
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("risk_factors: unexpected key %v", keyTok)
		}
		var desc string
		if err := dec.Decode(&desc); err != nil {
			return fmt.Errorf("risk_factors[%q]: %w", key, err)
		}
		if i, ok := index[key]; ok {
			out[i].Description = desc
			continue
		}
		index[key] = len(out)
		out = append(out, RiskFactor{Name: key, Description: desc})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*rf = out
	return nil
}

func (rf RiskFactors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range rf {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
