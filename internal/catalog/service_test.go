package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestService_BookInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	book := Book{ID: 7, Name: "الأم", CategoryID: 3, AuthorID: 11, MetaData: `{"date": "19121446"}`}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().BookByID(ctx, 7).Return(book, nil)
		mockRepo.EXPECT().AuthorByID(ctx, 11).Return(Author{ID: 11, Name: "الشافعي", DeathText: "204"}, nil)
		mockRepo.EXPECT().CategoryByID(ctx, 3).Return(Category{ID: 3, Name: "الفقه الشافعي"}, nil)

		info, err := service.BookInfo(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, "الأم", info.Name)
		assert.Equal(t, "الشافعي", info.AuthorName)
		assert.Equal(t, "204", info.AuthorDeathText)
		assert.Equal(t, "الفقه الشافعي", info.CategoryName)
	})

	t.Run("missing author and category leave names empty", func(t *testing.T) {
		mockRepo.EXPECT().BookByID(ctx, 7).Return(book, nil)
		mockRepo.EXPECT().AuthorByID(ctx, 11).Return(Author{}, fmt.Errorf("author 11: %w", ErrNotFound))
		mockRepo.EXPECT().CategoryByID(ctx, 3).Return(Category{}, fmt.Errorf("category 3: %w", ErrNotFound))

		info, err := service.BookInfo(ctx, 7)

		assert.NoError(t, err)
		assert.Empty(t, info.AuthorName)
		assert.Empty(t, info.CategoryName)
	})

	t.Run("zero references are not looked up", func(t *testing.T) {
		mockRepo.EXPECT().BookByID(ctx, 8).Return(Book{ID: 8, Name: "رسالة"}, nil)

		info, err := service.BookInfo(ctx, 8)

		assert.NoError(t, err)
		assert.Equal(t, "رسالة", info.Name)
	})

	t.Run("book not found", func(t *testing.T) {
		mockRepo.EXPECT().BookByID(ctx, 9).Return(Book{}, fmt.Errorf("book 9: %w", ErrNotFound))

		_, err := service.BookInfo(ctx, 9)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("author storage error", func(t *testing.T) {
		mockRepo.EXPECT().BookByID(ctx, 7).Return(book, nil)
		mockRepo.EXPECT().AuthorByID(ctx, 11).Return(Author{}, errors.New("db error"))

		_, err := service.BookInfo(ctx, 7)

		assert.EqualError(t, err, "db error")
	})
}

func TestService_ListBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	want := []BookSummary{{ID: 1, Name: "أ"}, {ID: 2, Name: "ب"}}
	mockRepo.EXPECT().ListBooks(ctx).Return(want, nil)

	got, err := service.ListBooks(ctx)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}
