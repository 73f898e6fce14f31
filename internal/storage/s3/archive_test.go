package s3_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/port"
	s3storage "billscan/internal/storage/s3"
	"billscan/mocks"
)

func TestNewArchive_DisabledWithoutBucket(t *testing.T) {
	a := s3storage.NewArchive(new(mocks.MockObjectStorage), "", "bills")
	assert.Nil(t, a)

	key, err := a.Put(context.Background(), domain.BillCategoryWater, uuid.New(), strings.NewReader("%PDF"), 4)
	assert.NoError(t, err)
	assert.Empty(t, key)

	url, err := a.URL(context.Background(), domain.BillCategoryWater, uuid.New())
	assert.NoError(t, err)
	assert.Empty(t, url)
}

func TestArchive_Put(t *testing.T) {
	store := new(mocks.MockObjectStorage)
	id := uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e9f-0a1b2c3d4e5f")
	store.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "bill-archive" &&
			in.Key == "bills/electricity/6f1c2d3e-4a5b-4c6d-8e9f-0a1b2c3d4e5f.pdf" &&
			in.ContentType == "application/pdf" &&
			in.Size == 4
	})).Return(&port.UploadOutput{Location: "s3://bill-archive/x"}, nil)

	a := s3storage.NewArchive(store, "bill-archive", "bills")
	key, err := a.Put(context.Background(), domain.BillCategoryElectricity, id, strings.NewReader("%PDF"), 4)

	require.NoError(t, err)
	assert.Equal(t, "bills/electricity/6f1c2d3e-4a5b-4c6d-8e9f-0a1b2c3d4e5f.pdf", key)
	store.AssertExpectations(t)
}

func TestArchive_PutError(t *testing.T) {
	store := new(mocks.MockObjectStorage)
	store.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	a := s3storage.NewArchive(store, "bill-archive", "bills")
	_, err := a.Put(context.Background(), domain.BillCategoryWater, uuid.New(), strings.NewReader(""), 0)

	assert.ErrorContains(t, err, "access denied")
}

func TestArchive_URL(t *testing.T) {
	store := new(mocks.MockObjectStorage)
	id := uuid.New()
	store.On("GetPresignedURL", mock.Anything, "bill-archive", "bills/water/"+id.String()+".pdf", int64(900)).
		Return("https://signed.example/doc", nil)

	a := s3storage.NewArchive(store, "bill-archive", "bills")
	url, err := a.URL(context.Background(), domain.BillCategoryWater, id)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/doc", url)
}
