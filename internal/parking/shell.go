package parking

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Shell is the interactive console adapter. It reads one command per line
// and renders service results; every domain error gets its own message, and
// a failed entry or exit is never reported as success.
type Shell struct {
	service *InstrumentedService
	scanner *bufio.Scanner
}

func NewShell(service *InstrumentedService) *Shell {
	return &Shell{
		service: service,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (s *Shell) Run(ctx context.Context) {
	fmt.Printf("parking-ledger: %d slots, %d available. Type 'help' for commands.\n",
		s.service.Capacity(), s.service.AvailableSlots())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		if !s.processCommand(ctx, input) {
			break
		}
	}
}

// processCommand returns false when the shell should stop.
func (s *Shell) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	command := parts[0]

	switch command {
	case "entry":
		s.handleEntry(ctx, parts)
	case "exit":
		s.handleExit(ctx, parts)
	case "slots":
		s.handleSlots()
	case "list":
		s.handleList(ctx)
	case "find":
		s.handleFind(ctx, parts)
	case "help":
		s.handleHelp()
	case "quit":
		fmt.Println("Bye")
		return false
	default:
		fmt.Printf("Unknown command: %s\n", command)
	}
	return true
}

func (s *Shell) handleEntry(ctx context.Context, parts []string) {
	if len(parts) < 3 {
		fmt.Println("Usage: entry <plate> <model>")
		return
	}

	plate := parts[1]
	model := strings.Join(parts[2:], " ")

	v, err := s.service.RegisterEntry(ctx, plate, model)
	if err != nil {
		fmt.Printf("Error: %s\n", entryErrorMessage(err))
		return
	}

	fmt.Printf("Entry recorded for %s at %s\n", v.Plate, v.EntryTime.Format("15:04:05 MST"))
}

func (s *Shell) handleExit(ctx context.Context, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: exit <plate>")
		return
	}

	v, charge, err := s.service.RegisterExit(ctx, parts[1])
	if err != nil {
		fmt.Printf("Error: %s\n", exitErrorMessage(err))
		return
	}

	fmt.Printf("Exit recorded for %s, billed hours: %d, charge: %s\n",
		v.Plate, BilledHours(v.EntryTime, *v.ExitTime), charge.StringFixed(2))
}

func (s *Shell) handleSlots() {
	fmt.Printf("Available slots: %d of %d\n", s.service.AvailableSlots(), s.service.Capacity())
}

func (s *Shell) handleList(ctx context.Context) {
	vehicles := s.service.ListVehicles(ctx)
	if len(vehicles) == 0 {
		fmt.Println("No vehicles recorded")
		return
	}

	fmt.Println("Plate\tModel\tEntry\t\t\tExit\t\t\tCharge\tPaid")
	for _, v := range vehicles {
		exit := "-"
		if v.ExitTime != nil {
			exit = v.ExitTime.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s\t%s\t%s\t%s\t%s\t%t\n",
			v.Plate, v.Model, v.EntryTime.Format("2006-01-02 15:04:05"),
			exit, v.AmountDue.StringFixed(2), v.Paid)
	}
}

func (s *Shell) handleFind(ctx context.Context, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: find <plate>")
		return
	}

	v, err := s.service.FindByPlate(ctx, parts[1])
	if err != nil {
		fmt.Println("Not found")
		return
	}

	status := "parked"
	if !v.Open() {
		status = fmt.Sprintf("left, charged %s", v.AmountDue.StringFixed(2))
	}
	fmt.Printf("%s (%s): entered %s, %s\n",
		v.Plate, v.Model, v.EntryTime.Format("2006-01-02 15:04:05"), status)
}

func (s *Shell) handleHelp() {
	fmt.Println("Commands:")
	fmt.Println("  entry <plate> <model>  register a vehicle entering the lot")
	fmt.Println("  exit <plate>           register a vehicle leaving and show the charge")
	fmt.Println("  slots                  show available slots")
	fmt.Println("  list                   list all records, open and closed")
	fmt.Println("  find <plate>           show the latest record for a plate")
	fmt.Println("  quit                   leave the shell")
}

func entryErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPlate):
		return "invalid plate: use letters, digits and dashes"
	case errors.Is(err, ErrInvalidModel):
		return "model is required"
	case errors.Is(err, ErrCapacityExceeded):
		return "no slots available, try again later"
	case errors.Is(err, ErrAlreadyParked):
		return "a vehicle with this plate is already parked"
	default:
		return err.Error()
	}
}

func exitErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPlate):
		return "invalid plate: use letters, digits and dashes"
	case errors.Is(err, ErrVehicleNotFound):
		return "no parked vehicle with this plate"
	default:
		return err.Error()
	}
}
