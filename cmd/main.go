package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quadralivre/QL-BookingClient/internal/config"
	"github.com/quadralivre/QL-BookingClient/internal/domain"
	citycacheRepo "github.com/quadralivre/QL-BookingClient/internal/infra/storage/citycache"
	fieldsRepo "github.com/quadralivre/QL-BookingClient/internal/infra/storage/fields"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/localstore"
	reservationsRepo "github.com/quadralivre/QL-BookingClient/internal/infra/storage/reservations"
	sessionRepo "github.com/quadralivre/QL-BookingClient/internal/infra/storage/session"
	usersRepo "github.com/quadralivre/QL-BookingClient/internal/infra/storage/users"
	"github.com/quadralivre/QL-BookingClient/internal/integrations/fieldservice"
	authService "github.com/quadralivre/QL-BookingClient/internal/service/auth"
	fieldsService "github.com/quadralivre/QL-BookingClient/internal/service/fields"
	reservationsService "github.com/quadralivre/QL-BookingClient/internal/service/reservations"
	availableHoursUC "github.com/quadralivre/QL-BookingClient/internal/usecase/get_available_hours"
	makeReservationUC "github.com/quadralivre/QL-BookingClient/internal/usecase/make_reservation"
	"github.com/quadralivre/QL-BookingClient/pkg/logger"
	"github.com/quadralivre/QL-BookingClient/pkg/metrics"
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

const usage = `usage: qlbooking <command> [flags]

commands:
  signup        register a new account
  signin        sign in and store the session
  logout        drop the stored session
  whoami        show the current user
  search        search fields by city
  fields        list all fields
  field         show one field with its weekly schedule
  create-field  register a new field
  hours         list bookable start times for a field on a date
  reserve       book a field (interactive)
  reservations  list my reservations
  cancel        cancel a reservation
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app собирает зависимости команд CLI
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	auth         *authService.Service
	fields       *fieldsService.Service
	reservations *reservationsService.Service
}

func run(args []string) error {
	if len(args) < 1 {
		fmt.Print(usage)
		return errors.New("command is required")
	}

	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Close()

	promMetrics := metrics.New(cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled {
		startMetricsListener(cfg, log)
	}

	store := localstore.NewFileStore(cfg.Storage.File)

	apiClient := fieldservice.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.Timeout)*time.Second,
		log,
	)

	app := &app{
		cfg: cfg,
		log: log,
		auth: authService.NewService(
			apiClient,
			usersRepo.NewRepository(store),
			sessionRepo.NewRepository(store),
			promMetrics,
			log,
		),
		fields: fieldsService.NewService(
			apiClient,
			fieldsRepo.NewRepository(store),
			citycacheRepo.NewRepository(store),
			promMetrics,
			log,
		),
		reservations: reservationsService.NewService(
			apiClient,
			reservationsRepo.NewRepository(store),
			&reservationsService.RealTimeProvider{},
			promMetrics,
			log,
		),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch cmd := args[0]; cmd {
	case "signup":
		return app.signUp(ctx, args[1:])
	case "signin":
		return app.signIn(ctx, args[1:])
	case "logout":
		return app.logout()
	case "whoami":
		return app.whoAmI()
	case "search":
		return app.search(ctx, args[1:])
	case "fields":
		return app.listFields(ctx)
	case "field":
		return app.showField(ctx, args[1:])
	case "create-field":
		return app.createField(ctx, args[1:])
	case "hours":
		return app.showHours(ctx, args[1:])
	case "reserve":
		return app.reserve(ctx, args[1:])
	case "reservations":
		return app.listReservations(ctx, args[1:])
	case "cancel":
		return app.cancelReservation(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// startMetricsListener поднимает debug-листенер с prometheus-метриками.
// Полезен в интерактивном режиме; живет до завершения процесса.
func startMetricsListener(cfg *config.Config, log *logger.Logger) {
	router := mux.NewRouter()
	router.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)

	go func() {
		log.Info("Metrics listener on %s%s", cfg.Metrics.Addr, cfg.Metrics.Path)
		if err := http.ListenAndServe(cfg.Metrics.Addr, router); err != nil {
			log.Warn("Metrics listener stopped: %v", err)
		}
	}()
}

func (a *app) signUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 8 characters)")
	cpf := fs.String("cpf", "", "CPF, 11 digits")
	_ = fs.Parse(args)

	if *name == "" || *email == "" || *password == "" || *cpf == "" {
		return errors.New("name, email, password and cpf are required")
	}

	session, err := a.auth.SignUp(ctx, &fieldservice.SignUpRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		CPF:      *cpf,
	})
	if err != nil {
		if errors.Is(err, authService.ErrEmailTaken) {
			return fmt.Errorf("email %s is already registered", *email)
		}
		return err
	}

	if session.Offline {
		fmt.Printf("Account created offline for %s; it will exist only on this device.\n", session.User.Email)
	} else {
		fmt.Printf("Account created. Signed in as %s.\n", session.User.Email)
	}
	return nil
}

func (a *app) signIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}

	session, err := a.auth.SignIn(ctx, &fieldservice.SignInRequest{
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		return err
	}

	if session.Offline {
		fmt.Printf("Signed in offline as %s.\n", session.User.Email)
	} else {
		fmt.Printf("Signed in as %s.\n", session.User.Email)
	}
	return nil
}

func (a *app) logout() error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *app) whoAmI() error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		if errors.Is(err, authService.ErrNotAuthenticated) {
			return errors.New("not signed in")
		}
		return err
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	city := fs.String("city", "", "city name")
	_ = fs.Parse(args)

	if *city == "" {
		return errors.New("city is required")
	}

	list, err := a.fields.SearchByCity(ctx, *city)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Printf("No fields found in %s.\n", *city)
		return nil
	}

	fmt.Printf("Fields in %s:\n", *city)
	printFields(list)
	return nil
}

func (a *app) listFields(ctx context.Context) error {
	list, err := a.fields.List(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No fields available.")
		return nil
	}

	printFields(list)
	return nil
}

func (a *app) showField(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("field", flag.ExitOnError)
	id := fs.String("id", "", "field id")
	_ = fs.Parse(args)

	if *id == "" {
		return errors.New("id is required")
	}

	field, err := a.fields.Get(ctx, *id)
	if err != nil {
		if errors.Is(err, fieldsService.ErrFieldNotFound) {
			return fmt.Errorf("field %s not found", *id)
		}
		return err
	}

	fmt.Printf("%s (%s)\n", field.Name, field.ID)
	fmt.Printf("  %s, %s\n", field.Address, field.City)
	fmt.Printf("  Sport: %s\n", field.SportType)
	if field.Description != "" {
		fmt.Printf("  %s\n", field.Description)
	}
	fmt.Println("  Schedule:")
	for _, slot := range field.Schedule {
		if !slot.IsOpen {
			fmt.Printf("    %-9s closed\n", slot.DayOfWeek)
			continue
		}
		fmt.Printf("    %-9s %s-%s, %s/hour\n", slot.DayOfWeek, slot.StartTime, slot.EndTime, slot.Price)
	}
	return nil
}

func (a *app) showHours(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hours", flag.ExitOnError)
	id := fs.String("id", "", "field id")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *id == "" {
		return errors.New("id is required")
	}

	field, err := a.fields.Get(ctx, *id)
	if err != nil {
		if errors.Is(err, fieldsService.ErrFieldNotFound) {
			return fmt.Errorf("field %s not found", *id)
		}
		return err
	}

	uc := availableHoursUC.NewUseCase(a.log)
	resp, err := uc.Execute(ctx, &availableHoursUC.Request{Field: field, Date: *date})
	if err != nil {
		switch {
		case errors.Is(err, availableHoursUC.ErrInvalidDate):
			return errors.New("date must be YYYY-MM-DD")
		case errors.Is(err, availableHoursUC.ErrPastDate):
			return errors.New("date is in the past")
		case errors.Is(err, availableHoursUC.ErrDayClosed):
			fmt.Printf("%s is closed on %s (%s)\n", field.Name, *date, resolveWeekdayHint(*date))
			return nil
		default:
			return err
		}
	}

	fmt.Printf("%s on %s (%s), %s/hour:\n", field.Name, resp.Date, resp.DayOfWeek, resp.Slot.Price)
	for _, h := range resp.Hours {
		max, err := availableHoursUC.MaxDuration(resp.Slot, h)
		if err != nil {
			return err
		}
		fmt.Printf("  %s (up to %dh)\n", h, max)
	}
	return nil
}

// resolveWeekdayHint возвращает день недели для подсказки, пустую строку
// при некорректной дате
func resolveWeekdayHint(date string) domain.Weekday {
	day, err := domain.ParseDate(date)
	if err != nil {
		return ""
	}
	return domain.WeekdayOf(day)
}

func (a *app) createField(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-field", flag.ExitOnError)
	name := fs.String("name", "", "field name")
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	sport := fs.String("sport", "", "sport type (ex: futsal)")
	description := fs.String("description", "", "description")
	days := fs.String("days", "", "open days, comma separated (ex: monday,wednesday,friday)")
	start := fs.String("start", "08:00", "opening time (HH:MM)")
	end := fs.String("end", "22:00", "closing time (HH:MM)")
	price := fs.String("price", "", "hourly price (ex: 150.00)")
	_ = fs.Parse(args)

	if *name == "" || *address == "" || *city == "" || *sport == "" || *days == "" || *price == "" {
		return errors.New("name, address, city, sport, days and price are required")
	}

	token, err := a.sessionToken()
	if err != nil {
		return err
	}

	schedule, err := buildSchedule(*days, *start, *end, *price)
	if err != nil {
		return err
	}

	field, err := a.fields.Create(ctx, token, &fieldservice.CreateFieldRequest{
		Name:        *name,
		Address:     *address,
		City:        *city,
		SportType:   *sport,
		Description: *description,
		Schedule:    schedule,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Field created: %s (%s)\n", field.Name, field.ID)
	return nil
}

func (a *app) reserve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reserve", flag.ExitOnError)
	fieldID := fs.String("field", "", "field id")
	_ = fs.Parse(args)

	if *fieldID == "" {
		return errors.New("field is required")
	}

	field, err := a.fields.Get(ctx, *fieldID)
	if err != nil {
		if errors.Is(err, fieldsService.ErrFieldNotFound) {
			return fmt.Errorf("field %s not found", *fieldID)
		}
		return err
	}

	wizard := makeReservationUC.NewWizard(field, a.auth, a.reservations, a.log)
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Booking %s (%s, %s)\n", field.Name, field.Address, field.City)

	// Шаг 1: дата
	for {
		date, err := prompt(reader, "Date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		if err := wizard.SelectDate(date); err != nil {
			fmt.Println(" ", reservationHint(err))
			continue
		}
		break
	}

	// Шаг 2: время и длительность
	for {
		hours, err := wizard.AvailableHours()
		if err != nil {
			return err
		}
		fmt.Print("Available start times: ")
		for i, h := range hours {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(h)
		}
		fmt.Println()

		startRaw, err := prompt(reader, "Start time (HH:MM): ")
		if err != nil {
			return err
		}
		start, err := types.NewTimeStringFromString(startRaw)
		if err != nil {
			fmt.Println("  time must be HH:MM")
			continue
		}

		max, err := wizard.MaxDuration(start)
		if err != nil {
			return err
		}
		if max == 0 {
			fmt.Println("  that start time is not available")
			continue
		}

		durationRaw, err := prompt(reader, fmt.Sprintf("Duration in hours (1-%d): ", max))
		if err != nil {
			return err
		}
		duration, err := strconv.Atoi(durationRaw)
		if err != nil {
			fmt.Println("  duration must be a number")
			continue
		}

		if err := wizard.SelectTime(start, duration); err != nil {
			if errors.Is(err, makeReservationUC.ErrAuthRequired) {
				return errors.New("sign in before booking: qlbooking signin")
			}
			fmt.Println(" ", reservationHint(err))
			continue
		}
		break
	}

	// Шаг 3: сводка и подтверждение
	summary, err := wizard.Summary()
	if err != nil {
		return err
	}

	fmt.Println("Summary:")
	fmt.Printf("  Field:    %s\n", summary.FieldName)
	fmt.Printf("  Date:     %s (%s)\n", summary.Date, summary.DayOfWeek)
	fmt.Printf("  Time:     %s-%s (%d h)\n", summary.StartTime, summary.EndTime, summary.DurationHours)
	fmt.Printf("  Total:    %s\n", summary.Price)

	answer, err := prompt(reader, "Confirm? [y/N]: ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Println("Booking aborted.")
		return nil
	}

	reservation, err := wizard.Confirm(ctx)
	if err != nil {
		if errors.Is(err, makeReservationUC.ErrDuplicateBooking) {
			return errors.New("you already have a confirmed booking for this slot")
		}
		return err
	}

	fmt.Printf("Booking confirmed. ID: %s\n", reservation.ID)
	return nil
}

func (a *app) listReservations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reservations", flag.ExitOnError)
	all := fs.Bool("all", false, "include cancelled reservations")
	_ = fs.Parse(args)

	token, err := a.sessionToken()
	if err != nil {
		return err
	}

	var list []*domain.Reservation
	if *all {
		list, err = a.reservations.List(ctx, token)
	} else {
		list, err = a.reservations.ListActive(ctx, token)
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No reservations.")
		return nil
	}

	printReservations(list)
	return nil
}

func (a *app) cancelReservation(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := fs.String("id", "", "reservation id")
	_ = fs.Parse(args)

	if *id == "" {
		return errors.New("id is required")
	}

	token, err := a.sessionToken()
	if err != nil {
		return err
	}

	if err := a.reservations.Cancel(ctx, token, *id); err != nil {
		if errors.Is(err, reservationsService.ErrReservationNotFound) {
			return fmt.Errorf("reservation %s not found", *id)
		}
		if errors.Is(err, reservationsService.ErrCannotCancel) {
			return fmt.Errorf("reservation %s is already cancelled", *id)
		}
		return err
	}

	fmt.Printf("Reservation %s cancelled.\n", *id)
	return nil
}

func (a *app) sessionToken() (string, error) {
	token, err := a.auth.Token(time.Now())
	if err != nil {
		if errors.Is(err, authService.ErrNotAuthenticated) {
			return "", errors.New("sign in first: qlbooking signin")
		}
		return "", err
	}
	return token, nil
}

// buildSchedule собирает недельное расписание: перечисленные дни открыты
// с одинаковым интервалом и ценой, остальные закрыты
func buildSchedule(days, start, end, price string) ([]domain.TimeSlot, error) {
	open := make(map[domain.Weekday]bool)
	for _, raw := range strings.Split(days, ",") {
		day := strings.ToLower(strings.TrimSpace(raw))
		if !domain.IsValidWeekday(day) {
			return nil, fmt.Errorf("unknown weekday: %q", raw)
		}
		open[domain.Weekday(day)] = true
	}

	startTime, err := types.NewTimeStringFromString(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	endTime, err := types.NewTimeStringFromString(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	week := []domain.Weekday{
		domain.Sunday, domain.Monday, domain.Tuesday, domain.Wednesday,
		domain.Thursday, domain.Friday, domain.Saturday,
	}

	schedule := make([]domain.TimeSlot, 0, len(week))
	for _, day := range week {
		slot := domain.TimeSlot{DayOfWeek: day}
		if open[day] {
			slot.IsOpen = true
			slot.StartTime = startTime
			slot.EndTime = endTime
			slot.Price = price
		}
		schedule = append(schedule, slot)
	}

	return schedule, nil
}

func printFields(list []*domain.Field) {
	for _, f := range list {
		fmt.Printf("- %s (%s): %s, %s [%s]\n", f.Name, f.ID, f.Address, f.City, f.SportType)
	}
}

func printReservations(list []*domain.Reservation) {
	for _, r := range list {
		fmt.Printf("- %s: %s on %s, %s-%s, %s [%s]\n",
			r.ID, r.FieldName, r.Date, r.StartTime, r.EndTime, r.Price, r.Status)
	}
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func reservationHint(err error) string {
	switch {
	case errors.Is(err, makeReservationUC.ErrNoDateSelected):
		return "pick a date first"
	case errors.Is(err, makeReservationUC.ErrPastDate):
		return "that date is in the past"
	case errors.Is(err, makeReservationUC.ErrNoAvailabilityForDay):
		return "the field is closed on that day"
	case errors.Is(err, makeReservationUC.ErrInvalidDate):
		return "use the YYYY-MM-DD format"
	case errors.Is(err, makeReservationUC.ErrInvalidStartTime):
		return "pick one of the listed start times"
	case errors.Is(err, makeReservationUC.ErrInvalidDuration):
		return "duration is out of range"
	default:
		return err.Error()
	}
}
