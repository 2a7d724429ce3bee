// Package reservation owns the dual-entity synchronizer: one logical booking
// stored as two differently-shaped rows (customer-facing Reservation, staff
// ledger Booking) that are created and re-priced as a single unit.
package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"weddingstudio/internal/domain"
	"weddingstudio/internal/modules/pricing"
	"weddingstudio/internal/modules/referral"
	"weddingstudio/internal/notification"
	"weddingstudio/internal/pkg/cipher"
	"weddingstudio/internal/travel"
)

// NotificationSender is the narrow fire-and-forget dispatch interface; a nil
// sender disables notifications.
type NotificationSender interface {
	Notify(ctx context.Context, kind string, bookingID int64, customer, phone string) error
}

type Service struct {
	db     *gorm.DB
	cipher *cipher.Cipher
	notifs NotificationSender
}

func NewService(db *gorm.DB, c *cipher.Cipher, notifs NotificationSender) *Service {
	return &Service{db: db, cipher: c, notifs: notifs}
}

// Create persists a Reservation and its paired Booking in one transaction.
// Pricing is computed once and written to both rows; a declared partner code
// is validated and credited inside the same transaction. On any failure
// nothing is persisted.
func (s *Service) Create(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, *domain.Booking, error) {
	tier := domain.ProductTier(req.Tier)
	if !tier.Valid() {
		return nil, nil, ErrValidation
	}

	weddingDate, err := time.Parse("2006-01-02", req.WeddingDate)
	if err != nil {
		return nil, nil, ErrValidation
	}
	if weddingDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, nil, ErrValidation
	}

	newYear, reviewBlog := pricing.EventFlagsForTier(tier, req.NewYearEvent, req.ReviewBlogEvent)

	referralDiscount := int64(0)
	if req.ReferredBy != "" {
		referralDiscount = pricing.ReferralUnit
	}

	quote := pricing.Calculate(pricing.Input{
		Tier:             tier,
		MakeupShoot:      req.MakeupShoot,
		PaebaekShoot:     req.PaebaekShoot,
		ReceptionShoot:   req.ReceptionShoot,
		UsbOption:        req.UsbOption,
		GimbalOption:     req.GimbalOption,
		DroneOption:      req.DroneOption,
		HighlightOption:  req.HighlightOption,
		NewYearEvent:     newYear,
		ReviewBlogEvent:  reviewBlog,
		MainCompany:      req.MainCompany,
		TravelFee:        travel.FeeFor(req.Region),
		ReferralDiscount: referralDiscount,
	})

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	res := &domain.Reservation{
		Nickname:        req.Nickname,
		PasswordHash:    string(hash),
		Tier:            tier,
		WeddingDate:     weddingDate,
		WeddingVenue:    req.WeddingVenue,
		Region:          req.Region,
		MainCompany:     req.MainCompany,
		MakeupShoot:     req.MakeupShoot,
		PaebaekShoot:    req.PaebaekShoot,
		ReceptionShoot:  req.ReceptionShoot,
		UsbOption:       req.UsbOption,
		GimbalOption:    req.GimbalOption,
		DroneOption:     req.DroneOption,
		HighlightOption: req.HighlightOption,
		NewYearEvent:    newYear,
		CoupleEvent:     req.CoupleEvent,
		ReviewBlogEvent: reviewBlog,
		Status:          domain.ReservationPending,
	}
	if err := s.sealIdentity(res, req); err != nil {
		return nil, nil, err
	}

	booking := &domain.Booking{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		WeddingDate:  weddingDate,
		Status:       domain.BookingPending,
	}
	if req.ReferredBy != "" {
		code := req.ReferredBy
		res.ReferredBy = &code
		booking.ReferredBy = &code
	}

	pricing.ApplyQuote(quote, res, booking)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(res).Error; err != nil {
			return err
		}

		product, err := getOrCreateProductTx(tx, tier)
		if err != nil {
			return err
		}

		booking.ProductID = product.ID
		booking.ReservationID = &res.ID
		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		res.BookingID = &booking.ID
		if err := tx.Model(&domain.Reservation{}).Where("id = ?", res.ID).
			Update("booking_id", booking.ID).Error; err != nil {
			return err
		}

		// Both sides of the referral commit together or not at all.
		if req.ReferredBy != "" {
			if err := referral.CreditReferrerTx(tx, req.ReferredBy); err != nil {
				if errors.Is(err, referral.ErrInvalidCode) || errors.Is(err, referral.ErrExpiredHost) {
					return ErrInvalidPartnerCode
				}
				return err
			}
		}

		// Participation in the referral program issues this booking its own
		// code, exactly once.
		if req.CoupleEvent {
			name := req.Nickname
			if name == "" {
				name = req.CustomerName
			}
			if err := referral.AssignCodeTx(tx, booking, res, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.Notify(ctx, notification.KindContract, booking.ID, req.CustomerName, req.Phone)
	}

	return res, booking, nil
}

// sealIdentity encrypts the identity fields onto the reservation. A cipher
// failure on a non-empty value aborts the write; cleartext is never stored.
func (s *Service) sealIdentity(res *domain.Reservation, req CreateReservationRequest) error {
	seal := func(plain string) (string, error) {
		enc := s.cipher.Encrypt(plain)
		if plain != "" && enc == "" {
			return "", ErrEncryption
		}
		return enc, nil
	}

	var err error
	if res.CustomerName, err = seal(req.CustomerName); err != nil {
		return err
	}
	if res.GroomName, err = seal(req.GroomName); err != nil {
		return err
	}
	if res.BrideName, err = seal(req.BrideName); err != nil {
		return err
	}
	if res.Phone, err = seal(req.Phone); err != nil {
		return err
	}
	if res.BridePhone, err = seal(req.BridePhone); err != nil {
		return err
	}
	res.Address, err = seal(req.Address)
	return err
}

// StaffUpdate patches the pair and re-runs the calculator. A change
// originating on either side is complete only once both rows carry the new
// totals, so everything happens in one transaction.
func (s *Service) StaffUpdate(ctx context.Context, reservationID int64, req StaffUpdateRequest) (*domain.Reservation, error) {
	var res domain.Reservation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&res, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var booking *domain.Booking
		if res.BookingID != nil {
			booking = &domain.Booking{}
			if err := tx.First(booking, *res.BookingID).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				booking = nil
			}
		}

		if err := applyPatch(&res, req); err != nil {
			return err
		}

		// Tier rules run on every tier change, not only at creation.
		res.NewYearEvent, res.ReviewBlogEvent = pricing.EventFlagsForTier(res.Tier, res.NewYearEvent, res.ReviewBlogEvent)

		// Unchecking referral participation drops the stored code for good.
		if req.CoupleEvent != nil && !*req.CoupleEvent && res.ReferredBy != nil {
			if err := referral.ClearRedeemedCodeTx(tx, booking, &res); err != nil {
				return err
			}
		}

		res.TravelFee = travel.FeeFor(res.Region)
		quote := pricing.Calculate(pricing.InputFromReservation(&res))
		pricing.ApplyQuote(quote, &res, booking)

		if err := tx.Save(&res).Error; err != nil {
			return err
		}
		if booking != nil {
			if req.Tier != nil {
				product, err := getOrCreateProductTx(tx, res.Tier)
				if err != nil {
					return err
				}
				booking.ProductID = product.ID
			}
			if req.WeddingDate != nil {
				booking.WeddingDate = res.WeddingDate
			}
			if err := tx.Save(booking).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func applyPatch(res *domain.Reservation, req StaffUpdateRequest) error {
	if req.Tier != nil {
		tier := domain.ProductTier(*req.Tier)
		if !tier.Valid() {
			return ErrValidation
		}
		res.Tier = tier
	}
	if req.WeddingDate != nil {
		d, err := time.Parse("2006-01-02", *req.WeddingDate)
		if err != nil {
			return ErrValidation
		}
		res.WeddingDate = d
	}
	if req.WeddingVenue != nil {
		res.WeddingVenue = *req.WeddingVenue
	}
	if req.Region != nil {
		res.Region = *req.Region
	}
	if req.MainCompany != nil {
		res.MainCompany = *req.MainCompany
	}

	if req.MakeupShoot != nil {
		res.MakeupShoot = *req.MakeupShoot
	}
	if req.PaebaekShoot != nil {
		res.PaebaekShoot = *req.PaebaekShoot
	}
	if req.ReceptionShoot != nil {
		res.ReceptionShoot = *req.ReceptionShoot
	}
	if req.UsbOption != nil {
		res.UsbOption = *req.UsbOption
	}
	if req.GimbalOption != nil {
		res.GimbalOption = *req.GimbalOption
	}
	if req.DroneOption != nil {
		res.DroneOption = *req.DroneOption
	}
	if req.HighlightOption != nil {
		res.HighlightOption = *req.HighlightOption
	}

	if req.NewYearEvent != nil {
		res.NewYearEvent = *req.NewYearEvent
	}
	if req.CoupleEvent != nil {
		res.CoupleEvent = *req.CoupleEvent
	}
	if req.ReviewBlogEvent != nil {
		res.ReviewBlogEvent = *req.ReviewBlogEvent
	}
	return nil
}

// GetView returns the decrypted customer-facing shape of a reservation.
func (s *Service) GetView(ctx context.Context, reservationID int64) (*View, error) {
	var res domain.Reservation
	if err := s.db.WithContext(ctx).First(&res, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	quote := pricing.Calculate(pricing.InputFromReservation(&res))

	return &View{
		ID:              res.ID,
		CustomerName:    s.cipher.Decrypt(res.CustomerName),
		GroomName:       s.cipher.Decrypt(res.GroomName),
		BrideName:       s.cipher.Decrypt(res.BrideName),
		Phone:           s.cipher.Decrypt(res.Phone),
		BridePhone:      s.cipher.Decrypt(res.BridePhone),
		Address:         s.cipher.Decrypt(res.Address),
		Nickname:        res.Nickname,
		Tier:            string(res.Tier),
		WeddingDate:     res.WeddingDate.Format("2006-01-02"),
		WeddingVenue:    res.WeddingVenue,
		Region:          res.Region,
		Status:          string(res.Status),
		ReferralCode:    res.ReferralCode,
		OriginalFootage: res.OriginalFootage,
		Quote:           quote,
	}, nil
}

// Authenticate checks the reservation's 4-digit password for mypage access.
func (s *Service) Authenticate(ctx context.Context, reservationID int64, password string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := s.db.WithContext(ctx).First(&res, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(res.PasswordHash), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	return &res, nil
}

func getOrCreateProductTx(tx *gorm.DB, tier domain.ProductTier) (*domain.Product, error) {
	var product domain.Product
	err := tx.Where("tier = ?", tier).First(&product).Error
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product = domain.Product{
		Tier:  tier,
		Name:  string(tier),
		Price: pricing.TierPrice(tier),
	}
	if err := tx.Create(&product).Error; err != nil {
		return nil, err
	}
	log.Info().Str("tier", string(tier)).Int64("product_id", product.ID).Msg("created product row for tier")
	return &product, nil
}
