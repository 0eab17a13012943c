// Package profilestore keeps named error model parameterizations in Redis so a
// tuned model can be reused across runs.
package profilestore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"prefixcorrector/pkg/options"
)

var (
	ErrNotFound    = errors.New("profilestore: profile not found")
	ErrInvalidName = errors.New("profilestore: empty profile name")
)

// Client is the subset of *redis.Client the store needs.
type Client interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const (
	fieldVocabularySize     = "vocabulary_size"
	fieldHitProbability     = "hit_probability"
	fieldInsertionFactor    = "insertion_factor"
	fieldSubstitutionFactor = "substitution_factor"
	fieldDeletionFactor     = "deletion_factor"
)

// Store maps each profile to a hash under prefix+name and tracks the names in
// a set.
type Store struct {
	client Client
	prefix string
	index  string
}

// New creates a Store with the provided Redis client.
func New(client Client) *Store {
	return &Store{client: client, prefix: "ecm_profile:", index: "ecm_profiles"}
}

func (s *Store) key(name string) string { return s.prefix + name }

// Save stores p under name, replacing any previous profile.
func (s *Store) Save(ctx context.Context, name string, p options.ErrorModelOptions) error {
	if name == "" {
		return ErrInvalidName
	}
	err := s.client.HSet(ctx, s.key(name), map[string]interface{}{
		fieldVocabularySize:     strconv.Itoa(p.VocabularySize),
		fieldHitProbability:     formatFloat(p.HitProbability),
		fieldInsertionFactor:    formatFloat(p.InsertionFactor),
		fieldSubstitutionFactor: formatFloat(p.SubstitutionFactor),
		fieldDeletionFactor:     formatFloat(p.DeletionFactor),
	}).Err()
	if err != nil {
		return fmt.Errorf("profilestore: save %q: %w", name, err)
	}
	if err := s.client.SAdd(ctx, s.index, name).Err(); err != nil {
		return fmt.Errorf("profilestore: index %q: %w", name, err)
	}
	return nil
}

// Load returns the profile stored under name.
func (s *Store) Load(ctx context.Context, name string) (options.ErrorModelOptions, error) {
	if name == "" {
		return options.ErrorModelOptions{}, ErrInvalidName
	}
	fields, err := s.client.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return options.ErrorModelOptions{}, fmt.Errorf("profilestore: load %q: %w", name, err)
	}
	if len(fields) == 0 {
		return options.ErrorModelOptions{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	var p options.ErrorModelOptions
	if p.VocabularySize, err = strconv.Atoi(fields[fieldVocabularySize]); err != nil {
		return options.ErrorModelOptions{}, fmt.Errorf("profilestore: %q field %s: %w", name, fieldVocabularySize, err)
	}
	for field, dst := range map[string]*float64{
		fieldHitProbability:     &p.HitProbability,
		fieldInsertionFactor:    &p.InsertionFactor,
		fieldSubstitutionFactor: &p.SubstitutionFactor,
		fieldDeletionFactor:     &p.DeletionFactor,
	} {
		if *dst, err = strconv.ParseFloat(fields[field], 64); err != nil {
			return options.ErrorModelOptions{}, fmt.Errorf("profilestore: %q field %s: %w", name, field, err)
		}
	}
	return p, nil
}

// List returns the stored profile names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.index).Result()
	if err != nil {
		return nil, fmt.Errorf("profilestore: list: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes the profile stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("profilestore: delete %q: %w", name, err)
	}
	return s.client.SRem(ctx, s.index, name).Err()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
