package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/internal/config"
	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/pkg/apperror"
	"github.com/dinetrack/dinetrack-api/pkg/logger"
	"github.com/dinetrack/dinetrack-api/pkg/printer"
)

// PrinterService routes accepted orders to the kitchen printer and renders
// receipts. Printing an order is the gate to billing: only printed orders
// count toward a session's subtotal.
type PrinterService struct {
	device      printer.Printer
	printerCfg  config.PrinterConfig
	posCfg      config.POSConfig
	orderRepo   repository.OrderRepository
	sessionRepo repository.SessionRepository
	auditRepo   repository.AuditRepository
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	device printer.Printer,
	printerCfg config.PrinterConfig,
	posCfg config.POSConfig,
	orderRepo repository.OrderRepository,
	sessionRepo repository.SessionRepository,
	auditRepo repository.AuditRepository,
) *PrinterService {
	return &PrinterService{
		device:      device,
		printerCfg:  printerCfg,
		posCfg:      posCfg,
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
	}
}

// PrintOrder sends an accepted order to the kitchen and marks it printed.
// The ticket is rendered and sent before the status flips: an order the
// kitchen never saw must not become billable.
func (s *PrinterService) PrintOrder(ctx context.Context, orderID, actorID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.Status.CanTransitionTo(enum.OrderStatusPrinted) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Order in status %q cannot be sent to the kitchen", order.Status))
	}

	session, err := s.sessionRepo.GetByID(ctx, order.SessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ticket := s.buildKitchenTicket(order, session, now)

	if err := s.device.Print(s.FormatKitchenTicket(ticket)); err != nil {
		logger.Error("kitchen ticket print failed", map[string]interface{}{
			"order_number": order.OrderNumber,
			"error":        err.Error(),
		})
		return nil, apperror.NewAppError(500, "Kitchen printer is not responding")
	}

	order.Status = enum.OrderStatusPrinted
	order.PrintedAt = &now
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.audit(ctx, order, actorID)
	return order, nil
}

// PrintReceipt renders and sends a receipt
func (s *PrinterService) PrintReceipt(receipt *entity.Receipt) error {
	return s.device.Print(s.FormatReceipt(receipt))
}

// ReceiptHeader returns the configured venue header
func (s *PrinterService) ReceiptHeader() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		VenueName: s.posCfg.VenueName,
		Address:   s.posCfg.VenueAddress,
		Phone:     s.posCfg.VenuePhone,
	}
}

// Status reports the configured printer type and whether it is reachable
func (s *PrinterService) Status() (string, bool) {
	return s.printerCfg.Type, s.device.IsConnected()
}

// TestPrint sends a short test document to the printer
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(s.printerCfg.Width)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(s.posCfg.VenueName).
		SetBold(false).
		Text("Printer test").
		Text(time.Now().Format("2006-01-02 15:04:05")).
		FeedLines(3).
		Cut()
	return s.device.Print(doc.Bytes())
}

func (s *PrinterService) buildKitchenTicket(order *entity.Order, session *entity.Session, printedAt time.Time) *entity.KitchenTicket {
	ticket := &entity.KitchenTicket{
		OrderNumber: order.OrderNumber,
		Source:      order.Source.String(),
		Notes:       order.Notes,
		PrintedAt:   printedAt.Format("15:04:05"),
	}
	if session != nil {
		ticket.OrderType = session.OrderType.String()
		if session.Table != nil {
			ticket.TableNumber = session.Table.TableNumber
		}
	}

	for i := range order.Items {
		item := &order.Items[i]
		line := entity.KitchenTicketLine{
			Quantity: item.Quantity,
			ItemName: item.MenuItem.Name,
			Notes:    item.Notes,
		}
		for j := range item.Modifiers {
			line.Modifiers = append(line.Modifiers, item.Modifiers[j].Modifier.Name)
		}
		ticket.Lines = append(ticket.Lines, line)
	}
	return ticket
}

// FormatKitchenTicket renders a kitchen ticket as ESC/POS bytes. No prices
// appear anywhere on it.
func (s *PrinterService) FormatKitchenTicket(ticket *entity.KitchenTicket) []byte {
	doc := printer.NewDocument(s.printerCfg.Width)

	doc.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text("KITCHEN").
		SetFontSize(printer.FontNormal).
		LineFeed()

	doc.SetAlign(printer.AlignLeft).
		SetBold(true).
		Text(ticket.OrderNumber).
		SetBold(false)
	if ticket.TableNumber != "" {
		doc.Text("Table " + ticket.TableNumber)
	}
	doc.Text(ticket.OrderType + " / " + ticket.Source).
		Text(ticket.PrintedAt).
		Separator('-')

	for _, line := range ticket.Lines {
		doc.SetBold(true).QtyLine(line.Quantity, line.ItemName).SetBold(false)
		for _, mod := range line.Modifiers {
			doc.Indented("+ " + mod)
		}
		if line.Notes != "" {
			doc.Indented("* " + line.Notes)
		}
	}

	if ticket.Notes != "" {
		doc.Separator('-').Text("NOTE: " + ticket.Notes)
	}

	doc.FeedLines(3).Cut()
	return doc.Bytes()
}

// FormatReceipt renders a customer receipt as ESC/POS bytes
func (s *PrinterService) FormatReceipt(receipt *entity.Receipt) []byte {
	doc := printer.NewDocument(s.printerCfg.Width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(receipt.Header.VenueName).
		SetBold(false)
	if receipt.Header.Address != "" {
		doc.Text(receipt.Header.Address)
	}
	if receipt.Header.Phone != "" {
		doc.Text(receipt.Header.Phone)
	}
	doc.LineFeed()

	doc.SetAlign(printer.AlignLeft).
		Text(receipt.BillNumber).
		Text(receipt.Date)
	if receipt.TableNumber != "" {
		doc.Text("Table " + receipt.TableNumber)
	}
	doc.Text(receipt.OrderType)
	if receipt.Cashier != "" {
		doc.Text("Cashier: " + receipt.Cashier)
	}
	doc.Separator('-')

	for _, item := range receipt.Items {
		doc.ItemLine(item.Quantity, item.Name, formatMoney(item.Total))
		for _, mod := range item.Modifiers {
			doc.Indented("+ " + mod)
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal", formatMoney(receipt.Subtotal))
	if receipt.Discount > 0 {
		doc.KeyValue("Discount", "-"+formatMoney(receipt.Discount))
	}
	if receipt.Tax > 0 {
		doc.KeyValue("Tax", formatMoney(receipt.Tax))
	}
	if receipt.DeliveryFee > 0 {
		doc.KeyValue("Delivery", formatMoney(receipt.DeliveryFee))
	}
	doc.SetBold(true).
		KeyValue("TOTAL", formatMoney(receipt.Total)).
		SetBold(false).
		Separator('-').
		KeyValue("Paid ("+receipt.PaymentMethod+")", formatMoney(receipt.Paid))
	if receipt.Change > 0 {
		doc.KeyValue("Change", formatMoney(receipt.Change))
	}

	doc.LineFeed().
		SetAlign(printer.AlignCenter).
		Text("Thank you!").
		FeedLines(3).
		Cut()
	return doc.Bytes()
}

func (s *PrinterService) audit(ctx context.Context, order *entity.Order, actorID uuid.UUID) {
	payload, _ := json.Marshal(map[string]interface{}{
		"order_number": order.OrderNumber,
	})
	recordID := order.ID
	log := &entity.AuditLog{
		Action:   entity.AuditOrderPrinted,
		Entity:   "order",
		RecordID: &recordID,
		ActorID:  &actorID,
		Details:  string(payload),
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		logger.Error("failed to write audit log", map[string]interface{}{
			"action": entity.AuditOrderPrinted,
			"error":  err.Error(),
		})
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
