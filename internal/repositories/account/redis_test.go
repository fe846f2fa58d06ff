package account

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetLink() {
	link := &Link{
		UserID:       "test-user-id",
		RefreshToken: "test-refresh-token",
		LinkedAt:     s.testNow,
	}

	err := s.repo.SaveLink(context.Background(), &SaveLinkInput{
		Link: link,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetLink(context.Background(), &GetLinkInput{
		UserID: "test-user-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("test-user-id", retrieved.UserID)
	s.Equal("test-refresh-token", retrieved.RefreshToken)
	s.Equal(s.testNow.Unix(), retrieved.LinkedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetLinkNotFound() {
	_, err := s.repo.GetLink(context.Background(), &GetLinkInput{
		UserID: "unknown-user",
	})
	s.Require().ErrorIs(err, ErrLinkNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveLinkOverwrites() {
	first := &Link{UserID: "user", RefreshToken: "old-token", LinkedAt: s.testNow}
	err := s.repo.SaveLink(context.Background(), &SaveLinkInput{Link: first})
	s.Require().NoError(err)

	second := &Link{UserID: "user", RefreshToken: "new-token", LinkedAt: s.testNow.Add(time.Hour)}
	err = s.repo.SaveLink(context.Background(), &SaveLinkInput{Link: second})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetLink(context.Background(), &GetLinkInput{UserID: "user"})
	s.Require().NoError(err)
	s.Equal("new-token", retrieved.RefreshToken)
}

func (s *RedisRepositoryTestSuite) TestDeleteLink() {
	link := &Link{UserID: "user", RefreshToken: "token", LinkedAt: s.testNow}
	err := s.repo.SaveLink(context.Background(), &SaveLinkInput{Link: link})
	s.Require().NoError(err)

	err = s.repo.DeleteLink(context.Background(), &DeleteLinkInput{UserID: "user"})
	s.Require().NoError(err)

	_, err = s.repo.GetLink(context.Background(), &GetLinkInput{UserID: "user"})
	s.Require().ErrorIs(err, ErrLinkNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteLinkNotFound() {
	err := s.repo.DeleteLink(context.Background(), &DeleteLinkInput{UserID: "never-linked"})
	s.Require().ErrorIs(err, ErrLinkNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveLinkValidation() {
	err := s.repo.SaveLink(context.Background(), nil)
	s.Require().Error(err)

	err = s.repo.SaveLink(context.Background(), &SaveLinkInput{
		Link: &Link{UserID: "", RefreshToken: "token"},
	})
	s.Require().Error(err)

	err = s.repo.SaveLink(context.Background(), &SaveLinkInput{
		Link: &Link{UserID: "user", RefreshToken: ""},
	})
	s.Require().Error(err)
}
