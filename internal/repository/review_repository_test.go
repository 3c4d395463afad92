package repository

import (
    "context"
    "errors"
    "testing"

    sqlmock "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/airnest/listing-reservation/internal/model"
)

func guestReview(targetKind string, targetID uint64, rating int) model.Review {
    return model.Review{
        BookingID:  11,
        AuthorID:   7,
        AuthorKind: model.AuthorGuest,
        TargetKind: targetKind,
        TargetID:   targetID,
        Rating:     rating,
        Text:       "stay went fine",
    }
}

func TestCreatePairCommitsBothReviews(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    location := guestReview(model.TargetListing, 3, 5)
    host := guestReview(model.TargetHost, 2, 4)

    mock.ExpectBegin()
    mock.ExpectExec("INSERT INTO reviews").
        WithArgs(location.BookingID, location.AuthorID, location.AuthorKind, location.TargetKind, location.TargetID, location.Rating, location.Text).
        WillReturnResult(sqlmock.NewResult(101, 1))
    mock.ExpectExec("INSERT INTO rating_aggregates").
        WithArgs(location.TargetKind, location.TargetID, location.Rating).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec("INSERT INTO reviews").
        WithArgs(host.BookingID, host.AuthorID, host.AuthorKind, host.TargetKind, host.TargetID, host.Rating, host.Text).
        WillReturnResult(sqlmock.NewResult(102, 1))
    mock.ExpectExec("INSERT INTO rating_aggregates").
        WithArgs(host.TargetKind, host.TargetID, host.Rating).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    repo := NewReviewRepo(db)
    require.NoError(t, repo.CreatePair(context.Background(), &location, &host))
    assert.Equal(t, uint64(101), location.ID)
    assert.Equal(t, uint64(102), host.ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePairRollsBackWhenSecondInsertFails(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    location := guestReview(model.TargetListing, 3, 5)
    host := guestReview(model.TargetHost, 2, 4)

    mock.ExpectBegin()
    mock.ExpectExec("INSERT INTO reviews").
        WithArgs(location.BookingID, location.AuthorID, location.AuthorKind, location.TargetKind, location.TargetID, location.Rating, location.Text).
        WillReturnResult(sqlmock.NewResult(101, 1))
    mock.ExpectExec("INSERT INTO rating_aggregates").
        WithArgs(location.TargetKind, location.TargetID, location.Rating).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec("INSERT INTO reviews").
        WithArgs(host.BookingID, host.AuthorID, host.AuthorKind, host.TargetKind, host.TargetID, host.Rating, host.Text).
        WillReturnError(errors.New("Error 1062: Duplicate entry"))
    mock.ExpectRollback()

    repo := NewReviewRepo(db)
    err = repo.CreatePair(context.Background(), &location, &host)
    assert.ErrorIs(t, err, ErrDuplicateReview)
    // the rollback expectation above is the point: the already-inserted
    // location review must not survive a failed pair
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePairRejectsBadRatingBeforeWriting(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    location := guestReview(model.TargetListing, 3, 5)
    host := guestReview(model.TargetHost, 2, 6)

    repo := NewReviewRepo(db)
    assert.ErrorIs(t, repo.CreatePair(context.Background(), &location, &host), ErrInvalidRating)
    assert.NoError(t, mock.ExpectationsWereMet(), "no transaction may start for an invalid rating")
}
