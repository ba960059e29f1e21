package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/krobus00/kite-order-cli/internal/config"
	"github.com/krobus00/kite-order-cli/internal/entity"
	"github.com/krobus00/kite-order-cli/internal/infrastructure"
	"github.com/krobus00/kite-order-cli/internal/repository"
	"github.com/krobus00/kite-order-cli/internal/service/submitter"
	"github.com/krobus00/kite-order-cli/internal/util"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// StartMenu runs the interactive six-choice order menu until the user exits.
func StartMenu(cmd *cobra.Command, args []string) {
	reader := bufio.NewReader(os.Stdin)
	store := repository.NewOrderStore(config.Env.Orders.FilePath)

	fmt.Println("\nZerodha Order Management System")

	for {
		fmt.Println("\n1. Create Order")
		fmt.Println("2. View All Orders")
		fmt.Println("3. Update Order")
		fmt.Println("4. Delete Order")
		fmt.Println("5. Execute Orders")
		fmt.Println("6. Exit")

		choice, err := readLine(reader, "\nSelect an option (1/2/3/4/5/6): ")
		fmt.Println()

		switch choice {
		case "1":
			createOrder(reader, store)
		case "2":
			printOrders(store.List())
		case "3":
			updateOrder(reader, store)
		case "4":
			deleteOrder(reader, store)
		case "5":
			executeOrders(cmd.Context(), store)
		case "6":
			fmt.Println("Exiting. Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please enter 1, 2, 3, 4, 5 or 6.")
		}

		// stdin closed
		if err != nil {
			return
		}
	}
}

func createOrder(reader *bufio.Reader, store *repository.OrderStore) {
	exchange, ok := promptOption(reader, "Enter Exchange (NSE/BSE or 1/2): ", util.ExchangeOptions)
	if !ok {
		return
	}
	rawSymbol, _ := readLine(reader, "Enter Trading Symbol: ")
	symbol := strings.ToUpper(rawSymbol)
	transactionType, ok := promptOption(reader, "Enter Transaction Type (BUY/SELL or 1/2): ", util.TransactionOptions)
	if !ok {
		return
	}
	orderType, ok := promptOption(reader, "Enter Order Type (MARKET/LIMIT or 1/2): ", util.OrderTypeOptions)
	if !ok {
		return
	}

	rawQuantity, _ := readLine(reader, "Enter Quantity: ")
	quantity, err := strconv.ParseInt(rawQuantity, 10, 64)
	if err != nil {
		fmt.Println("Invalid quantity. Must be an integer.")
		return
	}

	var price *decimal.Decimal
	if orderType == string(entity.OrderTypeLimit) {
		rawPrice, _ := readLine(reader, "Enter Price: ")
		parsed, err := decimal.NewFromString(rawPrice)
		if err != nil {
			fmt.Println("Invalid price. Must be a number.")
			return
		}
		price = &parsed
	}

	product, ok := promptOption(reader, "Enter Product (MIS/CNC or 1/2): ", util.ProductOptions)
	if !ok {
		return
	}

	order, err := store.Create(entity.Order{
		Exchange:        entity.Exchange(exchange),
		TradingSymbol:   symbol,
		TransactionType: entity.TransactionType(transactionType),
		OrderType:       entity.OrderType(orderType),
		Quantity:        quantity,
		Product:         entity.Product(product),
		Price:           price,
	})
	if err != nil {
		fmt.Printf("Could not create order: %v\n", err)
		return
	}

	fmt.Printf("\nOrder Created Successfully! Order ID: %d\n", order.OrderID)
}

func printOrders(orders []entity.Order) {
	if len(orders) == 0 {
		fmt.Println("No orders found.")
		return
	}

	fmt.Println("All Orders:")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Order ID", "Exchange", "Trading Symbol", "Transaction Type", "Order Type", "Quantity", "Product", "Price"})

	for _, order := range orders {
		price := "-"
		if order.Price != nil {
			price = order.Price.String()
		}

		table.Append([]string{
			strconv.FormatInt(order.OrderID, 10),
			string(order.Exchange),
			order.TradingSymbol,
			string(order.TransactionType),
			string(order.OrderType),
			strconv.FormatInt(order.Quantity, 10),
			string(order.Product),
			price,
		})
	}

	table.Render()
}

func updateOrder(reader *bufio.Reader, store *repository.OrderStore) {
	orders := store.List()
	if len(orders) == 0 {
		fmt.Println("No orders found.")
		return
	}

	printOrders(orders)

	rawID, _ := readLine(reader, "\nEnter the Order ID to update: ")
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Println("Invalid input. Order ID must be a number.")
		return
	}

	var current *entity.Order
	for idx := range orders {
		if orders[idx].OrderID == orderID {
			current = &orders[idx]
			break
		}
	}
	if current == nil {
		fmt.Printf("Order ID %d not found.\n", orderID)
		return
	}

	fmt.Printf("\nUpdating Order ID: %d\n", orderID)

	var quantity *int64
	if raw, _ := readLine(reader, "Enter new Quantity (leave blank to keep unchanged): "); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fmt.Println("Invalid quantity. Must be an integer.")
			return
		}
		quantity = &parsed
	}

	var price *decimal.Decimal
	if current.OrderType == entity.OrderTypeLimit {
		if raw, _ := readLine(reader, "Enter new Price (leave blank to keep unchanged): "); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				fmt.Println("Invalid price. Must be a number.")
				return
			}
			price = &parsed
		}
	}

	if _, err := store.Update(orderID, quantity, price); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			fmt.Printf("Order ID %d not found.\n", orderID)
			return
		}
		fmt.Printf("Could not update order: %v\n", err)
		return
	}

	fmt.Printf("\nOrder ID %d Updated Successfully!\n", orderID)
}

func deleteOrder(reader *bufio.Reader, store *repository.OrderStore) {
	orders := store.List()
	if len(orders) == 0 {
		fmt.Println("No orders found.")
		return
	}

	printOrders(orders)

	rawID, _ := readLine(reader, "\nEnter the Order ID to delete: ")
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Println("Invalid input. Order ID must be a number.")
		return
	}

	if err := store.Delete(orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			fmt.Printf("Order ID %d not found.\n", orderID)
			return
		}
		fmt.Printf("Could not delete order: %v\n", err)
		return
	}

	fmt.Printf("\nOrder ID %d Deleted Successfully!\n", orderID)
}

func executeOrders(ctx context.Context, store *repository.OrderStore) {
	client := infrastructure.NewKiteHTTPClient(config.Env.Kite.Timeout)

	historyRepo, closeHistory := openHistoryRepo(ctx)
	defer closeHistory()

	orderSubmitter := submitter.NewOrderSubmitter(config.Env.Kite, client, store, historyRepo)

	results, err := orderSubmitter.Execute(ctx)
	if err != nil {
		fmt.Println("Login failed.")
		return
	}

	if len(results) == 0 {
		fmt.Println("No orders found.")
		return
	}

	fmt.Println("Login successful! Enctoken retrieved.")
	for _, result := range results {
		if result.Failed() {
			fmt.Printf("Order for %s: submission failed: %s\n", result.TradingSymbol, result.Err)
			continue
		}
		fmt.Printf("Order for %s: %s\n", result.TradingSymbol, string(result.Response))
	}

	fmt.Println("All the orders executed.")
}

// openHistoryRepo wires the optional submission history sink. No DSN means no
// sink; a connection failure is logged and execution carries on without it.
func openHistoryRepo(ctx context.Context) (*repository.SubmissionHistoryRepository, func()) {
	historyConfig, ok := config.Env.Database["history"]
	if !ok || strings.TrimSpace(historyConfig.DSN) == "" {
		return nil, func() {}
	}

	db, err := infrastructure.NewPostgresConnection(ctx, historyConfig)
	if err != nil {
		logrus.Errorf("submission history database unavailable: %v", err)
		return nil, func() {}
	}

	return repository.NewSubmissionHistoryRepository(db), func() { _ = db.Close() }
}

func promptOption(reader *bufio.Reader, prompt string, options map[string]string) (string, bool) {
	for {
		raw, err := readLine(reader, prompt)
		if canonical, ok := util.ParseOption(raw, options); ok {
			return canonical, true
		}
		if err != nil {
			return "", false
		}
		fmt.Println("Invalid input. Please enter a valid option.")
	}
}

func readLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')

	return strings.TrimSpace(line), err
}
