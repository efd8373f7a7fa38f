package usecase

import (
	"context"

	"kavun/internal/entity"
	"kavun/internal/repository"
)

type UserUsecase interface {
	Get(ctx context.Context, userId string) (entity.User, error)
	SetOnline(ctx context.Context, userId string, online bool) error
	HandleUnregisterClient(ctx context.Context, userId string) error
}

type userUsecase struct {
	userRepo repository.UserRepository
}

func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
	}
}

func (u *userUsecase) Get(ctx context.Context, userId string) (entity.User, error) {
	user, err := u.userRepo.Get(ctx, userId)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return entity.User{}, ErrNotFound
		}
		return entity.User{}, err
	}

	return user, nil
}

func (u *userUsecase) SetOnline(ctx context.Context, userId string, online bool) error {
	return u.userRepo.SetOnline(ctx, userId, online)
}

func (u *userUsecase) HandleUnregisterClient(ctx context.Context, userId string) error {
	return u.userRepo.SetOnline(ctx, userId, false)
}
