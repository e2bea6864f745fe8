package handler

import (
	"errors"
	"io"

	"go-minimart/internal/service"
)

// Console is the interactive main menu.
type Console struct {
	term      *Terminal
	inventory *InventoryHandler
	reports   *ReportHandler
}

func NewConsole(term *Terminal, inventory service.InventoryService, reports service.ReportService, alerts *Alerts) *Console {
	return &Console{
		term:      term,
		inventory: NewInventoryHandler(term, inventory, alerts),
		reports:   NewReportHandler(term, reports, inventory),
	}
}

// Run shows the main menu until the user quits or the input ends. Only read
// errors other than io.EOF are returned.
func (c *Console) Run() error {
	for {
		c.term.Println("\nMain Window:")
		c.term.Println("============")
		c.term.Println("Choose one of the following options:")
		c.term.Println("(1) Display inventory overview")
		c.term.Println("(2) Display total profit report")
		c.term.Println("(3) View transactions")
		c.term.Println("(4) Low stock report")
		c.term.Println("(5) Quit")
		choice, err := c.term.Prompt("Enter Your Choice: ")
		if err != nil {
			return c.quit(err)
		}

		switch choice {
		case "1":
			err = c.inventory.Overview()
		case "2":
			c.reports.ProfitReport()
		case "3":
			err = c.reports.Transactions()
		case "4":
			c.reports.LowStock()
		case "5":
			return c.quit(nil)
		default:
			c.term.Println("Invalid choice. Please enter a number between 1 and 5.")
		}
		if err != nil {
			return c.quit(err)
		}
	}
}

func (c *Console) quit(err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	c.term.Println("Thank you for using MiniMart. Goodbye!")
	return nil
}
