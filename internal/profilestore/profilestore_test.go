package profilestore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefixcorrector/pkg/options"
)

// fakeClient keeps hashes and sets in memory.
type fakeClient struct {
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}
	err    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		hashes: make(map[string]map[string]string),
		sets:   make(map[string]map[string]struct{}),
	}
}

func (f *fakeClient) HSet(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	h := f.hashes[key]
	if h == nil {
		h = make(map[string]string)
		f.hashes[key] = h
	}
	for _, v := range values {
		for field, val := range v.(map[string]interface{}) {
			h[field] = fmt.Sprint(val)
		}
	}
	return redis.NewIntResult(int64(len(h)), nil)
}

func (f *fakeClient) HGetAll(_ context.Context, key string) *redis.MapStringStringCmd {
	if f.err != nil {
		return redis.NewMapStringStringResult(nil, f.err)
	}
	out := make(map[string]string)
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return redis.NewMapStringStringResult(out, nil)
}

func (f *fakeClient) SAdd(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	s := f.sets[key]
	if s == nil {
		s = make(map[string]struct{})
		f.sets[key] = s
	}
	for _, m := range members {
		s[m.(string)] = struct{}{}
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeClient) SRem(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	for _, m := range members {
		delete(f.sets[key], m.(string))
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeClient) SMembers(_ context.Context, key string) *redis.StringSliceCmd {
	if f.err != nil {
		return redis.NewStringSliceResult(nil, f.err)
	}
	var out []string
	for m := range f.sets[key] {
		out = append(out, m)
	}
	return redis.NewStringSliceResult(out, nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.hashes, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := New(newFakeClient())
	p := options.ErrorModelOptions{
		VocabularySize:     33,
		HitProbability:     0.85,
		InsertionFactor:    1.5,
		SubstitutionFactor: 1,
		DeletionFactor:     0.25,
	}

	require.NoError(t, store.Save(ctx, "ru", p))
	got, err := store.Load(ctx, "ru")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := New(client)

	require.NoError(t, store.Save(ctx, "es", options.DefaultOptions))
	require.NoError(t, store.Save(ctx, "en", options.DefaultOptions))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es"}, names)
	assert.Contains(t, client.hashes, "ecm_profile:en")

	require.NoError(t, store.Delete(ctx, "en"))
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"es"}, names)

	_, err = store.Load(ctx, "en")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorruptProfile(t *testing.T) {
	client := newFakeClient()
	client.hashes["ecm_profile:bad"] = map[string]string{fieldVocabularySize: "many"}

	_, err := New(client).Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.err = errors.New("connection refused")
	store := New(client)

	assert.ErrorIs(t, store.Save(ctx, "x", options.DefaultOptions), client.err)
	_, err := store.Load(ctx, "x")
	assert.ErrorIs(t, err, client.err)
	_, err = store.List(ctx)
	assert.ErrorIs(t, err, client.err)

	assert.ErrorIs(t, store.Save(ctx, "", options.DefaultOptions), ErrInvalidName)
}
