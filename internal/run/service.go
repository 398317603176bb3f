package run

import (
	"context"
	"errors"
	"fmt"

	"github.com/promptlab/promptlab/internal/ai"
	"github.com/promptlab/promptlab/internal/common"
	"github.com/promptlab/promptlab/internal/persona"
	"github.com/promptlab/promptlab/internal/thread"
)

var ErrThreadNotFound = errors.New("thread not found")

// Publisher enqueues a job id for the worker. Satisfied by the RabbitMQ
// publisher; tests swap in a recorder.
type Publisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

// Service owns the workshop-run lifecycle: enqueue from the API process,
// execute in the worker.
type Service struct {
	repo     *Repo
	threads  *thread.Store
	registry *ai.Registry
	pub      Publisher
}

func NewService(repo *Repo, threads *thread.Store, registry *ai.Registry, pub Publisher) *Service {
	return &Service{repo: repo, threads: threads, registry: registry, pub: pub}
}

type EnqueueInput struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Persona  string `json:"persona"`
	Prompt   string `json:"prompt"`
}

// Enqueue validates the target thread, persists the job and publishes it.
func (s *Service) Enqueue(ctx context.Context, project, threadID string, in EnqueueInput) (*Job, error) {
	t, err := s.threads.Get(project, threadID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrThreadNotFound
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	if in.Provider == "" {
		in.Provider = "openrouter"
	}
	j := &Job{
		ID:       id,
		Project:  project,
		ThreadID: threadID,
		Provider: in.Provider,
		Model:    in.Model,
		Persona:  in.Persona,
		Prompt:   in.Prompt,
		Status:   JobQueued,
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}
	if err := s.pub.PublishJob(ctx, j.ID); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	return s.repo.Get(ctx, id)
}

// Execute runs a queued job to completion: call the provider, append the
// reply to the thread as an iteration, record the outcome. Provider failures
// are terminal; there is no retry.
func (s *Service) Execute(ctx context.Context, jobID string) error {
	_ = s.repo.MarkRunning(ctx, jobID)

	j, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}

	provider, err := s.registry.Get(ctx, j.Provider, j.Model)
	if err != nil {
		_ = s.repo.MarkFailed(ctx, jobID, err.Error())
		return err
	}

	messages := []ai.Message{}
	if j.Persona != "" {
		messages = append(messages, ai.Message{
			Role:    "system",
			Content: persona.Lookup(j.Persona).Instructions,
		})
	}
	messages = append(messages, ai.Message{Role: "user", Content: j.Prompt})

	reply, err := provider.Chat(ctx, messages)
	if err != nil {
		_ = s.repo.MarkFailed(ctx, jobID, err.Error())
		return err
	}

	cost := persona.EstimateWorkshopCost([]string{j.Model}, j.Prompt, false).TotalUSD
	it, err := s.threads.AddIteration(j.Project, j.ThreadID, thread.Iteration{
		"model":    j.Model,
		"provider": j.Provider,
		"persona":  j.Persona,
		"prompt":   j.Prompt,
		"response": reply,
		"cost":     cost,
		"jobId":    j.ID,
	})
	if err != nil {
		wrapped := fmt.Errorf("append iteration: %w", err)
		_ = s.repo.MarkFailed(ctx, jobID, wrapped.Error())
		return wrapped
	}

	iterID, _ := it["id"].(string)
	return s.repo.MarkSucceeded(ctx, jobID, iterID)
}
