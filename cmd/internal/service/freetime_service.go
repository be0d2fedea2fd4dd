package service

import (
	"context"
	"time"

	"instime/cmd/internal/domain/entity"
	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type FreetimeRepository interface {
	FindByID(ctx context.Context, id int) (*entity.Freetime, error)
	FindByIDs(ctx context.Context, ids []int) ([]*entity.Freetime, error)
	FindByUserID(ctx context.Context, userID int) ([]*entity.Freetime, error)
	Save(ctx context.Context, freetime *entity.Freetime) error
	Delete(ctx context.Context, freetime *entity.Freetime) error
}

// FreetimeRequest carries the raw start/end strings. Besides RFC3339 they
// may be plain dates/times in the display zone or phrases like "tomorrow 5pm".
type FreetimeRequest struct {
	Start string `json:"start" validate:"required,max=64"`
	End   string `json:"end" validate:"required,max=64"`
}

type FreetimeResponse struct {
	ID          int    `json:"id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	PrettyStart string `json:"pretty_start"`
	PrettyEnd   string `json:"pretty_end"`
	UserID      int    `json:"user_id"`
}

type DefaultFreetimeService struct {
	FreetimeRepo FreetimeRepository
	Tx           Transactor
	Validate     *validator.Validate
	Location     *time.Location
	Now          func() time.Time
}

func NewFreetimeService(freetimeRepo FreetimeRepository, tx Transactor, validate *validator.Validate, loc *time.Location) *DefaultFreetimeService {
	return &DefaultFreetimeService{FreetimeRepo: freetimeRepo, Tx: tx, Validate: validate, Location: loc, Now: time.Now}
}

func (f *DefaultFreetimeService) GetFreetimes(ctx context.Context, userID int) ([]*FreetimeResponse, apierror.ErrorResponse) {
	freetimes, err := f.FreetimeRepo.FindByUserID(ctx, userID)
	if err != nil {
		log.Errorf("failed to find freetimes for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*FreetimeResponse, len(freetimes))
	for i, freetime := range freetimes {
		resp[i] = toFreetimeResponse(freetime, f.Location)
	}
	return resp, nil
}

func (f *DefaultFreetimeService) GetFreetime(ctx context.Context, userID, id int) (*FreetimeResponse, apierror.ErrorResponse) {
	freetime, apierr := ownedFreetime(ctx, f.FreetimeRepo, userID, id)
	if apierr != nil {
		return nil, apierr
	}
	return toFreetimeResponse(freetime, f.Location), nil
}

// CreateFreetime stores a new block of availability. The bounds are not
// checked against each other: an end before the start is accepted as is.
func (f *DefaultFreetimeService) CreateFreetime(ctx context.Context, userID int, req *FreetimeRequest) (*FreetimeResponse, apierror.ErrorResponse) {
	freetime := &entity.Freetime{UserID: userID}
	if apierr := f.apply(freetime, req); apierr != nil {
		return nil, apierr
	}

	if err := f.FreetimeRepo.Save(ctx, freetime); err != nil {
		log.Errorf("failed to save freetime for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return toFreetimeResponse(freetime, f.Location), nil
}

func (f *DefaultFreetimeService) UpdateFreetime(ctx context.Context, userID, id int, req *FreetimeRequest) (*FreetimeResponse, apierror.ErrorResponse) {
	var freetime *entity.Freetime
	apierr := inTransaction(ctx, f.Tx, func(ctx context.Context) apierror.ErrorResponse {
		var apierr apierror.ErrorResponse
		freetime, apierr = ownedFreetime(ctx, f.FreetimeRepo, userID, id)
		if apierr != nil {
			return apierr
		}

		if apierr := f.apply(freetime, req); apierr != nil {
			return apierr
		}

		if err := f.FreetimeRepo.Save(ctx, freetime); err != nil {
			log.Errorf("failed to update freetime %d: %v", id, err)
			return apierror.InternalServerError
		}
		return nil
	})
	if apierr != nil {
		return nil, apierr
	}
	return toFreetimeResponse(freetime, f.Location), nil
}

func (f *DefaultFreetimeService) DeleteFreetime(ctx context.Context, userID, id int) apierror.ErrorResponse {
	return inTransaction(ctx, f.Tx, func(ctx context.Context) apierror.ErrorResponse {
		freetime, apierr := ownedFreetime(ctx, f.FreetimeRepo, userID, id)
		if apierr != nil {
			return apierr
		}

		if err := f.FreetimeRepo.Delete(ctx, freetime); err != nil {
			log.Errorf("failed to delete freetime %d: %v", id, err)
			return apierror.InternalServerError
		}
		return nil
	})
}

func (f *DefaultFreetimeService) apply(freetime *entity.Freetime, req *FreetimeRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := f.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	now := f.Now()
	start, err := utils.ParseTime(req.Start, now, f.Location)
	if err != nil {
		return apierror.MalformedTimeError
	}
	end, err := utils.ParseTime(req.End, now, f.Location)
	if err != nil {
		return apierror.MalformedTimeError
	}

	freetime.StartTime = start
	freetime.EndTime = end
	return nil
}

// ownedFreetime fetches a freetime and checks it belongs to userID.
func ownedFreetime(ctx context.Context, repo FreetimeRepository, userID, id int) (*entity.Freetime, apierror.ErrorResponse) {
	freetime, err := repo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch freetime by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if freetime == nil {
		return nil, apierror.NotFoundError
	}

	if freetime.UserID != userID {
		return nil, apierror.NotOwnedError
	}
	return freetime, nil
}

func toFreetimeResponse(freetime *entity.Freetime, loc *time.Location) *FreetimeResponse {
	return &FreetimeResponse{
		ID:          freetime.ID,
		Start:       utils.FormatUTC(freetime.StartTime),
		End:         utils.FormatUTC(freetime.EndTime),
		PrettyStart: utils.FormatPretty(freetime.StartTime, loc),
		PrettyEnd:   utils.FormatPretty(freetime.EndTime, loc),
		UserID:      freetime.UserID,
	}
}
