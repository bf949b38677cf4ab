package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dori/tasklist/internal/model"
)

// FormatVersion is the envelope version written by this build
const FormatVersion = 1

const recordDateLayout = "2006-01-02"

// envelope is the versioned wrapper every task file carries
type envelope struct {
	Version int      `json:"version" yaml:"version" toml:"version"`
	Tasks   []record `json:"tasks" yaml:"tasks" toml:"tasks"`
}

type record struct {
	ID       int    `json:"id" yaml:"id" toml:"id"`
	Name     string `json:"name" yaml:"name" toml:"name"`
	Deadline string `json:"deadline" yaml:"deadline" toml:"deadline"`
	Complete bool   `json:"complete" yaml:"complete" toml:"complete"`
}

func toEnvelope(tasks []*model.Task) envelope {
	env := envelope{
		Version: FormatVersion,
		Tasks:   make([]record, 0, len(tasks)),
	}
	for _, t := range tasks {
		env.Tasks = append(env.Tasks, record{
			ID:       t.ID(),
			Name:     t.Name(),
			Deadline: t.Deadline().Format(recordDateLayout),
			Complete: t.Complete(),
		})
	}
	return env
}

func fromEnvelope(env envelope) ([]*model.Task, error) {
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported task file version %d", env.Version)
	}
	tasks := make([]*model.Task, 0, len(env.Tasks))
	for i, r := range env.Tasks {
		deadline, err := time.Parse(recordDateLayout, r.Deadline)
		if err != nil {
			return nil, fmt.Errorf("task %d (record %d): bad deadline %q: %w", r.ID, i, r.Deadline, err)
		}
		tasks = append(tasks, model.RestoreTask(r.ID, r.Name, deadline, r.Complete))
	}
	return tasks, nil
}

func encode(format Kind, tasks []*model.Task) ([]byte, error) {
	env := toEnvelope(tasks)

	switch format {
	case KindJSON:
		return json.MarshalIndent(env, "", "  ")
	case KindYAML:
		return yaml.Marshal(env)
	case KindTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(env); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported file format: %s", format)
	}
}

func decode(format Kind, data []byte) ([]*model.Task, error) {
	var env envelope

	switch format {
	case KindJSON:
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
	case KindYAML:
		if err := yaml.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	case KindTOML:
		if err := toml.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s", format)
	}

	return fromEnvelope(env)
}
