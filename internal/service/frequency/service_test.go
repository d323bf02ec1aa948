package frequency

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocab/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockFrequencyRepo struct {
	FrequencyCountFunc func(ctx context.Context, word string) (int64, error)
	MetaFunc           func(ctx context.Context, key string) (string, error)

	metaCalls int
}

func (m *mockFrequencyRepo) FrequencyCount(ctx context.Context, word string) (int64, error) {
	return m.FrequencyCountFunc(ctx, word)
}

func (m *mockFrequencyRepo) Meta(ctx context.Context, key string) (string, error) {
	m.metaCalls++
	return m.MetaFunc(ctx, key)
}

func newTestService(repo *mockFrequencyRepo) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func totalMeta(total string) func(context.Context, string) (string, error) {
	return func(_ context.Context, key string) (string, error) {
		if key != TotalKey {
			return "", domain.ErrNotFound
		}
		return total, nil
	}
}

// ---------------------------------------------------------------------------
// Compute
// ---------------------------------------------------------------------------

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int64
		total int64
		want  domain.Frequency
	}{
		{
			name:  "one in a thousand",
			count: 1_000,
			total: 1_000_000,
			want:  domain.Frequency{Zipf: 6, PerMillion: 1000, Percentage: 0.1, Label: "very common"},
		},
		{
			name:  "one per million",
			count: 1,
			total: 1_000_000,
			want:  domain.Frequency{Zipf: 3, PerMillion: 1, Percentage: 0.0001, Label: "uncommon"},
		},
		{
			name:  "rounded",
			count: 7,
			total: 3_000_000,
			want:  domain.Frequency{Zipf: 3.37, PerMillion: 2.33, Percentage: 0.000233, Label: "uncommon"},
		},
		{
			name:  "below one per billion clamps to zero",
			count: 1,
			total: 10_000_000_000,
			want:  domain.Frequency{Label: "very rare"},
		},
		{
			name:  "unknown word",
			count: 0,
			total: 1_000_000,
			want:  domain.Frequency{Label: "very rare"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Compute(tt.count, tt.total))
		})
	}
}

// ---------------------------------------------------------------------------
// Frequency
// ---------------------------------------------------------------------------

func TestService_Frequency(t *testing.T) {
	t.Parallel()

	var gotWord string
	repo := &mockFrequencyRepo{
		MetaFunc: totalMeta("1000000"),
		FrequencyCountFunc: func(_ context.Context, word string) (int64, error) {
			gotWord = word
			return 100, nil
		},
	}
	svc := newTestService(repo)

	f, err := svc.Frequency(context.Background(), "  The ")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "the", gotWord)
	assert.Equal(t, 5.0, f.Zipf)
	assert.Equal(t, 100.0, f.PerMillion)
	assert.Equal(t, "common", f.Label)

	_, err = svc.Frequency(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.metaCalls, "total is loaded once")
}

func TestService_Frequency_NoTable(t *testing.T) {
	t.Parallel()

	for _, metaErr := range []error{domain.ErrNotFound, domain.ErrUnavailable} {
		repo := &mockFrequencyRepo{
			MetaFunc: func(context.Context, string) (string, error) { return "", metaErr },
			FrequencyCountFunc: func(context.Context, string) (int64, error) {
				t.Fatal("count must not be queried without a table")
				return 0, nil
			},
		}

		f, err := newTestService(repo).Frequency(context.Background(), "word")
		require.NoError(t, err)
		assert.Nil(t, f)
	}
}

func TestService_Frequency_Errors(t *testing.T) {
	t.Parallel()

	t.Run("meta failure", func(t *testing.T) {
		t.Parallel()
		repo := &mockFrequencyRepo{
			MetaFunc: func(context.Context, string) (string, error) { return "", errors.New("disk I/O error") },
		}
		_, err := newTestService(repo).Frequency(context.Background(), "word")
		require.Error(t, err)
	})

	t.Run("malformed total", func(t *testing.T) {
		t.Parallel()
		repo := &mockFrequencyRepo{MetaFunc: totalMeta("lots")}
		_, err := newTestService(repo).Frequency(context.Background(), "word")
		require.Error(t, err)
	})

	t.Run("count failure", func(t *testing.T) {
		t.Parallel()
		repo := &mockFrequencyRepo{
			MetaFunc: totalMeta("10"),
			FrequencyCountFunc: func(context.Context, string) (int64, error) {
				return 0, errors.New("boom")
			},
		}
		_, err := newTestService(repo).Frequency(context.Background(), "word")
		require.Error(t, err)
	})
}

func TestService_Zipf(t *testing.T) {
	t.Parallel()

	repo := &mockFrequencyRepo{
		MetaFunc: totalMeta("1000000000"),
		FrequencyCountFunc: func(context.Context, string) (int64, error) {
			return 1000, nil
		},
	}
	zipf, ok, err := newTestService(repo).Zipf(context.Background(), "word")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3.0, zipf)

	empty := &mockFrequencyRepo{
		MetaFunc: func(context.Context, string) (string, error) { return "", domain.ErrNotFound },
	}
	_, ok, err = newTestService(empty).Zipf(context.Background(), "word")
	require.NoError(t, err)
	assert.False(t, ok)
}
