package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"

	"eventregistry/internal/domain"
)

const mainMenu = `
####### MENU PRINCIPAL #######
| 1 - Cadastrar evento       |
| 2 - Listar eventos         |
| 3 - Inscrever participante |
| 4 - Realizar check-in      |
| 5 - Cancelar inscrição     |
| 6 - Relatórios             |
| 0 - Sair                   |`

// Console is the interactive text front end of the registry.
type Console struct {
	Logger    *slog.Logger
	Events    domain.EventService
	Attendees domain.AttendeeService
	Reports   domain.ReportService
}

func NewConsole(logger *slog.Logger, events domain.EventService, attendees domain.AttendeeService, reports domain.ReportService) *Console {
	return &Console{
		Logger:    logger,
		Events:    events,
		Attendees: attendees,
		Reports:   reports,
	}
}

// Run reads menu choices from in until the user picks 0 or in is exhausted.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	p := newPrompter(in, out)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.println(mainMenu)
		opt, err := p.line("\nEscolha uma opção: ")
		if err != nil {
			return ignoreClosed(err)
		}

		var run func(context.Context, *prompter) error
		switch opt {
		case "1":
			run = c.createEvents
		case "2":
			run = c.listEvents
		case "3":
			run = c.enroll
		case "4":
			run = c.checkIn
		case "5":
			run = c.cancel
		case "6":
			run = c.reports
		case "0":
			p.println("Obrigado por ter utilizado nosso sistema. Até a próxima.")
			return nil
		default:
			p.println("Opção INVÁLIDA, tente novamente.")
			continue
		}
		if err := run(ctx, p); err != nil {
			return ignoreClosed(err)
		}
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

// showError prints the user-facing message for err. Unexpected errors are
// logged with their full chain.
func (c *Console) showError(ctx context.Context, p *prompter, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		p.printf("Erro: %s\n", verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		p.println("Erro: Evento não encontrado.")
	case errors.Is(err, domain.ErrEventFull):
		p.println("Erro: O evento já está lotado.")
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		p.println("Erro: Esse e-mail já está inscrito neste evento.")
	default:
		c.Logger.ErrorContext(ctx, "operation failed", "op", op, "err", err)
		p.println("Erro inesperado, tente novamente.")
	}
}

func (c *Console) createEvents(ctx context.Context, p *prompter) error {
	for {
		if err := c.createEvent(ctx, p); err != nil {
			return err
		}
		again, err := p.yes("\nDeseja cadastrar outro evento?")
		if err != nil || !again {
			return err
		}
	}
}

func (c *Console) createEvent(ctx context.Context, p *prompter) error {
	var req domain.CreateEventRequest
	var err error
	if req.Kind, err = p.text("Tipo (workshop/palestra)"); err != nil {
		return err
	}
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		c.showError(ctx, p, "create event", err)
		return nil
	}
	if req.Name, err = p.text("Nome do evento"); err != nil {
		return err
	}
	if req.Date, err = p.eventDate("Data do evento"); err != nil {
		return err
	}
	if req.Location, err = p.text("Local do evento"); err != nil {
		return err
	}
	if req.Capacity, err = p.positiveInt("Capacidade máxima"); err != nil {
		return err
	}
	if req.Price, err = p.price("Preço do ingresso"); err != nil {
		return err
	}
	extraLabel := "Palestrante"
	if kind == domain.KindWorkshop {
		extraLabel = "Material necessário"
	}
	if req.Extra, err = p.text(extraLabel); err != nil {
		return err
	}

	event, err := c.Events.CreateEvent(ctx, &req)
	if err != nil {
		c.showError(ctx, p, "create event", err)
		return nil
	}
	p.printf("\nEvento '%s' cadastrado com SUCESSO! (ID: %d)\n", event.Name(), event.ID())
	return nil
}

func (c *Console) listEvents(ctx context.Context, p *prompter) error {
	events, err := c.Events.ListEvents(ctx)
	if err != nil {
		c.showError(ctx, p, "list events", err)
		return nil
	}
	p.println("\n#### LISTA DE EVENTOS ####")
	if len(events) == 0 {
		p.println("Nenhum evento cadastrado.")
	}
	printEvents(p, events)

	search, err := p.yes("\nVocê deseja fazer uma busca de evento por categoria ou data?")
	if err != nil || !search {
		return err
	}
	term, err := p.line("Digite a categoria ou a data (DD/MM/AAAA): ")
	if err != nil {
		return err
	}
	byCategory, err := c.Events.FindByCategory(ctx, term)
	if err != nil {
		c.showError(ctx, p, "find by category", err)
		return nil
	}
	byDate, err := c.Events.FindByDate(ctx, term)
	if err != nil {
		c.showError(ctx, p, "find by date", err)
		return nil
	}
	results := append(byCategory, byDate...)
	if len(results) == 0 {
		p.println("\nNenhum evento encontrado.")
		return nil
	}
	p.println("\n#### RESULTADOS DA BUSCA ####")
	printEvents(p, results)
	return nil
}

func printEvents(p *prompter, events []*domain.Event) {
	for _, e := range events {
		p.println(e.Describe())
		p.println("")
	}
}

func (c *Console) enroll(ctx context.Context, p *prompter) error {
	for {
		events, err := c.Events.ListEvents(ctx)
		if err != nil {
			c.showError(ctx, p, "list events", err)
			return nil
		}
		if len(events) == 0 {
			p.println("Nenhum evento cadastrado.")
			return nil
		}
		enrolled := make(map[int64]int, len(events))
		counts, err := c.Reports.CountsByEvent(ctx)
		if err != nil {
			c.showError(ctx, p, "count participants", err)
			return nil
		}
		for _, row := range counts {
			enrolled[row.EventID] = row.Enrolled
		}

		p.println("\n#### EVENTOS DISPONÍVEIS ####")
		for i, e := range events {
			p.printf("%d - %s (%d/%d)\n", i+1, e.Name(), enrolled[e.ID()], e.Capacity())
		}
		choice, err := p.positiveInt("Escolha o número do evento")
		if err != nil {
			return err
		}
		if choice > len(events) {
			p.println("Evento INVÁLIDO, tente novamente.")
			continue
		}

		req := domain.EnrollRequest{EventID: events[choice-1].ID()}
		if req.Name, err = p.text("Nome do participante"); err != nil {
			return err
		}
		if req.Email, err = p.text("E-mail do participante"); err != nil {
			return err
		}
		participant, err := c.Attendees.Enroll(ctx, &req)
		if err != nil {
			c.showError(ctx, p, "enroll", err)
		} else {
			p.printf("\nInscrição de %s realizada com SUCESSO! (ID: %d)\n", participant.Name(), participant.ID())
		}

		again, err := p.yes("\nVocê deseja inscrever mais um participante?")
		if err != nil || !again {
			return err
		}
	}
}

func (c *Console) checkIn(ctx context.Context, p *prompter) error {
	for {
		email, err := p.text("Digite o e-mail do participante")
		if err != nil {
			return err
		}
		res, err := c.Attendees.CheckIn(ctx, email)
		switch {
		case err != nil:
			c.showError(ctx, p, "check in", err)
		case res == domain.CheckInDone:
			p.println("Check-in realizado!")
		case res == domain.CheckInAlreadyDone:
			p.println("Participante já fez check-in anteriormente.")
		default:
			p.println("Participante NÃO encontrado.")
		}

		again, err := p.yes("\nVocê deseja fazer mais algum Check-in?")
		if err != nil || !again {
			return err
		}
	}
}

func (c *Console) cancel(ctx context.Context, p *prompter) error {
	for {
		email, err := p.text("Digite o e-mail do participante")
		if err != nil {
			return err
		}
		ok, err := c.Attendees.CancelEnrollment(ctx, email)
		switch {
		case err != nil:
			c.showError(ctx, p, "cancel enrollment", err)
		case ok:
			p.println("Inscrição cancelada.")
		default:
			p.println("Participante NÃO encontrado.")
		}

		again, err := p.yes("\nVocê deseja cancelar mais uma inscrição?")
		if err != nil || !again {
			return err
		}
	}
}

const reportMenu = `
##### RELATÓRIOS #####
1 - Número total de inscritos por evento
2 - Lista de eventos com vagas disponíveis
3 - Receita total por evento
4 - Receita de um evento pelo nome
5 - Participantes de um evento
0 - Voltar ao menu principal`

func (c *Console) reports(ctx context.Context, p *prompter) error {
	for {
		p.println(reportMenu)
		opt, err := p.line("Escolha uma opção: ")
		if err != nil {
			return err
		}
		switch opt {
		case "1":
			c.reportCounts(ctx, p)
		case "2":
			c.reportAvailability(ctx, p)
		case "3":
			c.reportRevenues(ctx, p)
		case "4":
			name, err := p.text("Nome do evento")
			if err != nil {
				return err
			}
			revenue, err := c.Reports.RevenueByEventName(ctx, name)
			if err != nil {
				c.showError(ctx, p, "revenue by name", err)
				continue
			}
			p.printf("%s: R$%.2f\n", name, revenue)
		case "5":
			if err := c.reportParticipants(ctx, p); err != nil {
				return err
			}
		case "0":
			return nil
		default:
			p.println("Opção INVÁLIDA, tente novamente.")
		}
	}
}

func (c *Console) reportCounts(ctx context.Context, p *prompter) {
	rows, err := c.Reports.CountsByEvent(ctx)
	if err != nil {
		c.showError(ctx, p, "count participants", err)
		return
	}
	p.println("\n#### INSCRITOS POR EVENTO ####")
	if len(rows) == 0 {
		p.println("Nenhum evento cadastrado.")
	}
	for _, r := range rows {
		p.printf("%s: %d inscritos\n", r.Name, r.Enrolled)
	}
}

func (c *Console) reportAvailability(ctx context.Context, p *prompter) {
	rows, err := c.Reports.EventsWithAvailability(ctx)
	if err != nil {
		c.showError(ctx, p, "availability", err)
		return
	}
	p.println("\n#### EVENTOS COM VAGAS DISPONÍVEIS ####")
	if len(rows) == 0 {
		p.println("Nenhum evento com vagas.")
	}
	for _, r := range rows {
		p.printf("%s -> %d vagas restantes\n", r.Name, r.Remaining)
	}
}

func (c *Console) reportRevenues(ctx context.Context, p *prompter) {
	rows, err := c.Reports.Revenues(ctx)
	if err != nil {
		c.showError(ctx, p, "revenues", err)
		return
	}
	p.println("\n##### RECEITA TOTAL POR EVENTO #####")
	if len(rows) == 0 {
		p.println("Nenhum evento cadastrado.")
	}
	for _, r := range rows {
		p.printf("%s: R$%.2f\n", r.Name, r.Revenue)
	}
}

func (c *Console) reportParticipants(ctx context.Context, p *prompter) error {
	raw, err := p.text("ID do evento")
	if err != nil {
		return err
	}
	id, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil || id <= 0 {
		p.println("Evento INVÁLIDO.")
		return nil
	}
	list, err := c.Attendees.ListParticipants(ctx, id)
	if err != nil {
		c.showError(ctx, p, "list participants", err)
		return nil
	}
	if len(list) == 0 {
		p.println("Nenhum participante inscrito.")
	}
	for _, participant := range list {
		status := ""
		if participant.CheckedIn() {
			status = " | check-in feito"
		}
		p.printf("%s%s\n", participant.String(), status)
	}
	return nil
}
