package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFormat_PadsAndDoesNotTruncate(t *testing.T) {
	require.Equal(t, "CBC0001", Orders.Format(1))
	require.Equal(t, "PROD0042", Products.Format(42))
	require.Equal(t, "PET10000", Pets.Format(10000))
}

func TestNext_EmptyCollectionStartsAtOne(t *testing.T) {
	id, err := Orders.Next(nil)
	require.NoError(t, err)
	require.Equal(t, "CBC0001", id)
}

func TestNext_SequentialCallsIncrease(t *testing.T) {
	var existing []string
	for want := int64(1); want <= 3; want++ {
		id, err := Orders.Next(existing)
		require.NoError(t, err)
		require.Equal(t, Orders.Format(want), id)
		existing = append(existing, id)
	}
}

func TestNext_IgnoresForeignPrefixes(t *testing.T) {
	id, err := Categories.Next([]string{"CAT0003", "PROD0099", "legacy-7"})
	require.NoError(t, err)
	require.Equal(t, "CAT0004", id)
}

func TestNext_MalformedSuffixIsReported(t *testing.T) {
	_, err := Products.Next([]string{"PROD0001", "PRODabc"})
	require.ErrorIs(t, err, ErrMalformedIdentifier)
	require.Contains(t, err.Error(), "PRODabc")
}

func TestParse(t *testing.T) {
	n, err := Offerings.Parse("SRV0007")
	require.NoError(t, err)
	require.Equal(t, int64(7), n)

	_, err = Offerings.Parse("PET0007")
	require.ErrorIs(t, err, ErrForeignIdentifier)

	_, err = Offerings.Parse("SRV")
	require.ErrorIs(t, err, ErrMalformedIdentifier)

	_, err = Offerings.Parse("SRV99999999999999999999999")
	require.ErrorIs(t, err, ErrMalformedIdentifier)
}

func TestNext_IsOneMoreThanHighest(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		counters := rapid.SliceOf(rapid.Int64Range(1, 1_000_000)).Draw(t, "counters")
		ids := make([]string, 0, len(counters))
		var highest int64
		for _, n := range counters {
			ids = append(ids, Pets.Format(n))
			if n > highest {
				highest = n
			}
		}
		next, err := Pets.Next(ids)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		got, err := Pets.Parse(next)
		if err != nil {
			t.Fatalf("parse %q: %v", next, err)
		}
		if got != highest+1 {
			t.Fatalf("expected %d, got %d (%s)", highest+1, got, next)
		}
	})
}

func TestFormat_RoundTripsThroughParse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64Range(0, 1<<40).Draw(t, "n")
		id := Products.Format(n)
		got, err := Products.Parse(id)
		if err != nil {
			t.Fatalf("parse %q: %v", id, err)
		}
		if got != n {
			t.Fatalf("round trip mismatch: %d != %d", got, n)
		}
	})
}

func TestCounter_DoesNotReuseDeletedIdentifiers(t *testing.T) {
	c := Counter{Format: Orders}
	first, err := c.Next(nil)
	require.NoError(t, err)
	require.Equal(t, "CBC0001", first)
	c.Observe(first)

	// CBC0001 was deleted, so no ids remain.
	next, err := c.Next(nil)
	require.NoError(t, err)
	require.Equal(t, "CBC0002", next)
}

func TestCounter_NextWithoutObserveDoesNotAdvance(t *testing.T) {
	c := Counter{Format: Pets}
	a, err := c.Next([]string{"PET0004"})
	require.NoError(t, err)
	b, err := c.Next([]string{"PET0004"})
	require.NoError(t, err)
	require.Equal(t, "PET0005", a)
	require.Equal(t, a, b)

	c.Observe("PET0009")
	c.Observe("SRV0100")
	c.Observe("PETxyz")
	next, err := c.Next([]string{"PET0004"})
	require.NoError(t, err)
	require.Equal(t, "PET0010", next)
}
