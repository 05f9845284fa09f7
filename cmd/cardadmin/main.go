package main

import (
	"database/sql"
	"fmt"
	"os"

	"bankportal/internal/config"
	"bankportal/internal/repositories"
	"bankportal/internal/services"

	_ "github.com/lib/pq"
)

const usage = `cardadmin — card request management

Usage:
  cardadmin create-request <userId> <cardType> [status] [adminNotes]
  cardadmin update-status <userId> <cardType> <newStatus> [adminNotes]
  cardadmin activate-card <userId> <cardType> <cardNumber> <expiryDate> <cvv> [adminNotes]
  cardadmin list-users
  cardadmin migrate-data
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		fail("database connection failed: %v", err)
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db)
	cardRepo := repositories.NewCardRepository(db)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegram := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	svc := services.NewCardService(userRepo, cardRepo, emailService, telegram)

	args := os.Args[2:]
	switch os.Args[1] {
	case "create-request":
		createRequest(svc, args)
	case "update-status":
		updateStatus(svc, args)
	case "activate-card":
		activateCard(svc, args)
	case "list-users":
		listUsers(svc)
	case "migrate-data":
		migrateData(svc)
	default:
		fmt.Print(usage)
		os.Exit(2)
	}
}

func createRequest(svc *services.CardService, args []string) {
	if len(args) < 2 {
		fail("create-request needs <userId> <cardType>")
	}
	status, notes := "", ""
	if len(args) > 2 {
		status = args[2]
	}
	if len(args) > 3 {
		notes = args[3]
	}
	req, err := svc.CreateRequest(args[0], args[1], status, notes)
	if err != nil {
		fail("create-request failed: %v", err)
	}
	fmt.Printf("request created: user=%s type=%s status=%s\n", req.UserID, req.CardType, req.Status)
}

func updateStatus(svc *services.CardService, args []string) {
	if len(args) < 3 {
		fail("update-status needs <userId> <cardType> <newStatus>")
	}
	var notes *string
	if len(args) > 3 {
		notes = &args[3]
	}
	req, err := svc.UpdateStatus(args[0], args[1], args[2], notes)
	if err != nil {
		fail("update-status failed: %v", err)
	}
	fmt.Printf("status updated: user=%s type=%s status=%s\n", req.UserID, req.CardType, req.Status)
}

func activateCard(svc *services.CardService, args []string) {
	if len(args) < 5 {
		fail("activate-card needs <userId> <cardType> <cardNumber> <expiryDate> <cvv>")
	}
	notes := ""
	if len(args) > 5 {
		notes = args[5]
	}
	card, err := svc.ActivateCard(args[0], args[1], services.CardActivation{
		CardNumber: args[2],
		ExpiryDate: args[3],
		CVV:        args[4],
		Notes:      notes,
	})
	if err != nil {
		fail("activate-card failed: %v", err)
	}
	fmt.Printf("card activated: user=%s type=%s displayed=%t\n", card.UserID, card.CardType, card.IsDisplayed)
}

func listUsers(svc *services.CardService) {
	states, err := svc.ListUsers()
	if err != nil {
		fail("list-users failed: %v", err)
	}
	for _, st := range states {
		fmt.Printf("%s <%s>\n", st.User.ID, st.User.Email)
		for _, req := range st.Requests {
			fmt.Printf("  %s: %s (requested %s)\n", req.CardType, req.Status, req.RequestedAt.Format("2006-01-02"))
		}
		for _, c := range st.Cards {
			fmt.Printf("  card %s: %s active=%t displayed=%t\n", c.CardType, c.CardNumber, c.IsActive, c.IsDisplayed)
		}
	}
	fmt.Printf("%d user(s)\n", len(states))
}

func migrateData(svc *services.CardService) {
	created, err := svc.MigrateExisting()
	if err != nil {
		fail("migrate-data failed: %v", err)
	}
	fmt.Printf("migration done: %d request(s) created\n", created)
}

func fail(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
