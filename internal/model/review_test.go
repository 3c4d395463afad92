package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestRatingAggregateAverage(t *testing.T) {
    var empty RatingAggregate
    assert.Nil(t, empty.Average(), "no reviews is nil, not zero")

    a := RatingAggregate{Count: 4, Sum: 14}
    avg := a.Average()
    require.NotNil(t, avg)
    assert.InDelta(t, 3.5, *avg, 1e-9)
}

func TestRatingAggregateAdd(t *testing.T) {
    // a host's direct reviews composed with its listings' reviews
    host := RatingAggregate{Count: 2, Sum: 9}
    listing := RatingAggregate{Count: 3, Sum: 12}

    host.Add(listing)
    assert.Equal(t, int64(5), host.Count)
    assert.Equal(t, int64(21), host.Sum)

    avg := host.Average()
    require.NotNil(t, avg)
    assert.InDelta(t, 4.2, *avg, 1e-9)

    // folding in an empty aggregate changes nothing
    host.Add(RatingAggregate{})
    assert.Equal(t, int64(5), host.Count)
}
