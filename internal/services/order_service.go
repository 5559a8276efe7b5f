package services

import (
	"database/sql"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
	applog "github.com/3DMakc/3d-makc-fishing-store/internal/log"
	"github.com/3DMakc/3d-makc-fishing-store/internal/notify"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
	"github.com/3DMakc/3d-makc-fishing-store/internal/validate"
)

// CheckoutForm carries the submitted contact fields, trimmed, so a
// rejected submission can be echoed back into the template as-is.
type CheckoutForm struct {
	FullName string
	Phone    string
	Region   string
	City     string
	NPBranch string
	Comment  string
}

// Validate normalizes the form in place and returns every failing
// message; it never stops at the first error.
func (f *CheckoutForm) Validate() []string {
	var errs []string

	name, ok := validate.FullName(f.FullName)
	f.FullName = name
	if !ok {
		errs = append(errs, "Введите ФИО")
	}
	phone, ok := validate.Phone(f.Phone)
	f.Phone = phone
	if !ok {
		errs = append(errs, "Телефон должен быть в формате +380XXXXXXXXX")
	}
	city, ok := validate.City(f.City)
	f.City = city
	if !ok {
		errs = append(errs, "Укажите город")
	}
	branch, ok := validate.Branch(f.NPBranch)
	f.NPBranch = branch
	if !ok {
		errs = append(errs, "Укажите отделение Новой Почты")
	}
	return errs
}

type OrderService struct {
	Orders *repos.OrderRepo
	Notify notify.Notifier
}

func NewOrderService(orders *repos.OrderRepo, n notify.Notifier) *OrderService {
	return &OrderService{Orders: orders, Notify: n}
}

// Place persists the order and its line items atomically, then fires the
// notification. The notification is fire-and-forget: its failure is
// logged and swallowed, never rolled back into the checkout.
func (s *OrderService) Place(cart domain.Cart, form CheckoutForm) (domain.Order, error) {
	o := domain.Order{
		FullName: form.FullName,
		Phone:    form.Phone,
		Region:   form.Region,
		City:     form.City,
		NPBranch: form.NPBranch,
		Comment:  form.Comment,
		TotalUAH: cart.Total(),
		Status:   "new",
	}
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: sql.NullInt64{Int64: it.ProductID, Valid: true},
			Name:      it.Name,
			PriceUAH:  it.PriceUAH,
			Qty:       it.Qty,
		})
	}

	id, err := s.Orders.Create(o, items)
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = id

	if s.Notify != nil {
		if err := s.Notify.OrderPlaced(o, items); err != nil {
			applog.Error(nil, "notify.order.fail", err, map[string]any{"order_id": id})
		}
	}
	return o, nil
}
