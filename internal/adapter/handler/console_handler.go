package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/rl1809/shop-cart/internal/core/domain"
	"github.com/rl1809/shop-cart/internal/core/service"
)

const (
	promptDataEntry = "Data entry? (Yes(y), No(n)): "
	promptArticle   = "Enter the article: "
	promptQuantity  = "Enter the quantity of the product: "
	promptCommand   = "\nEnter the command (add, remove, lists, end): "

	msgUndefinedCommand = "The command is not defined."
	msgDuplicateArticle = "Warning. The article is already in the store's database."
	msgNoElements       = "No elements."
	msgEndOfProgram     = "End of program."
)

var separator = strings.Repeat("-", 58)

// errInputClosed ends the session when the input runs out.
var errInputClosed = errors.New("input closed")

// ConsoleHandler speaks the interactive text protocol: a setup phase that
// fills the inventory, then the command loop.
type ConsoleHandler struct {
	cartService *service.CartService
	in          *bufio.Reader
	out         io.Writer
	logger      *zap.Logger
}

func NewConsoleHandler(cartService *service.CartService, in io.Reader, out io.Writer, logger *zap.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		cartService: cartService,
		in:          bufio.NewReader(in),
		out:         out,
		logger:      logger,
	}
}

// Run drives a whole session and prints the closing banner. Running out of
// input ends the session the same way the end command does.
func (h *ConsoleHandler) Run(ctx context.Context) error {
	err := h.Setup(ctx)
	if err == nil {
		err = h.Commands(ctx)
	}
	if err != nil && !errors.Is(err, errInputClosed) {
		return err
	}

	fmt.Fprintf(h.out, "%s\n%s\n", separator, msgEndOfProgram)
	return nil
}

func (h *ConsoleHandler) Setup(ctx context.Context) error {
	for {
		answer, err := h.askAnswer()
		if err != nil {
			return err
		}
		if answer == domain.AnswerNo {
			return nil
		}

		article, err := h.ask(promptArticle)
		if err != nil {
			return err
		}

		var quantity int
		for {
			var ok bool
			quantity, ok, err = h.askQuantity()
			if err != nil {
				return err
			}
			if ok && quantity >= 0 {
				break
			}
		}

		inserted, err := h.cartService.Stock(ctx, article, quantity)
		if err != nil {
			h.report(err)
			continue
		}
		if !inserted {
			fmt.Fprintln(h.out, msgDuplicateArticle)
		}
	}
}

func (h *ConsoleHandler) Commands(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		token, err := h.ask(promptCommand)
		if err != nil {
			return err
		}

		switch command := domain.ParseCommand(token); command {
		case domain.CommandAdd, domain.CommandRemove:
			if err := h.transfer(ctx, command); err != nil {
				if errors.Is(err, errInputClosed) {
					return err
				}
				h.report(err)
			}
		case domain.CommandLists:
			if err := h.lists(ctx); err != nil {
				h.report(err)
			}
		case domain.CommandEnd:
			return nil
		case domain.CommandUndefined:
			fmt.Fprintln(h.out, msgUndefinedCommand)
		}
	}
}

// transfer asks for the article first and only asks for the quantity once
// the article is known to the source ledger.
func (h *ConsoleHandler) transfer(ctx context.Context, command domain.Command) error {
	mode := command.Mode()

	article, err := h.ask(promptArticle)
	if err != nil {
		return err
	}
	if err := h.cartService.CheckArticle(ctx, mode, article); err != nil {
		return err
	}

	quantity, ok, err := h.askQuantity()
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewInvalidQuantityError()
	}

	if command == domain.CommandRemove {
		return h.cartService.Remove(ctx, article, quantity)
	}
	return h.cartService.Add(ctx, article, quantity)
}

func (h *ConsoleHandler) lists(ctx context.Context) error {
	inventory, cart, err := h.cartService.Lists(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(h.out, RenderList(domain.LedgerInventory.Caption(), inventory))
	fmt.Fprint(h.out, RenderList(domain.LedgerCart.Caption(), cart))
	return nil
}

func (h *ConsoleHandler) report(err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(h.out, "Error. %s\n", validationErr.Message)
		return
	}

	h.logger.Error("command failed", zap.Error(err))
	fmt.Fprintf(h.out, "Error. %v\n", err)
}

func (h *ConsoleHandler) ask(prompt string) (string, error) {
	fmt.Fprint(h.out, prompt)
	return h.readToken()
}

// readToken returns the next whitespace-delimited token. Tokens have no
// length limit.
func (h *ConsoleHandler) readToken() (string, error) {
	var token strings.Builder
	for {
		r, _, err := h.in.ReadRune()
		if errors.Is(err, io.EOF) {
			if token.Len() > 0 {
				return token.String(), nil
			}
			return "", errInputClosed
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}

		if unicode.IsSpace(r) {
			if token.Len() > 0 {
				return token.String(), nil
			}
			continue
		}
		token.WriteRune(r)
	}
}

func (h *ConsoleHandler) askAnswer() (domain.Answer, error) {
	for {
		token, err := h.ask(promptDataEntry)
		if err != nil {
			return domain.AnswerInvalid, err
		}
		if answer := domain.ParseAnswer(token); answer != domain.AnswerInvalid {
			return answer, nil
		}
	}
}

// askQuantity reports ok=false when the token is not an integer.
func (h *ConsoleHandler) askQuantity() (int, bool, error) {
	token, err := h.ask(promptQuantity)
	if err != nil {
		return 0, false, err
	}

	quantity, err := strconv.Atoi(token)
	if err != nil {
		h.logger.Debug("quantity is not an integer", zap.String("token", token))
		return 0, false, nil
	}
	return quantity, true, nil
}

// RenderList formats a ledger as a captioned block, one "article - quantity"
// line per entry in the order given.
func RenderList(caption string, entries []domain.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n--- %s list: ---\n", caption)
	if len(entries) == 0 {
		b.WriteString(msgNoElements + "\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "%s - %d\n", e.Article, e.Quantity)
	}
	fmt.Fprintf(&b, "--- End of %s. ---\n", caption)

	return b.String()
}
