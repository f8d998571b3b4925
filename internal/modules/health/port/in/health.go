package in

import "context"

type Usecase interface {
	LogMood(ctx context.Context, rating int, note string) error
}
