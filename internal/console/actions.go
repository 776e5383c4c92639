package console

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/ledger"
)

func createAccount(ctx context.Context, c *Console) error {
	name, err := c.readLine("Account name: ")
	if err != nil {
		return err
	}
	balance, err := c.promptDecimal("Initial balance")
	if err != nil {
		return err
	}
	a, err := c.deps.Accounts.Create(ctx, name, balance)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Account created: %s (%s) balance %s\n", a.Name, a.ID, c.money(a.Balance))
	return nil
}

func createCategory(ctx context.Context, c *Console) error {
	name, err := c.readLine("Category name: ")
	if err != nil {
		return err
	}
	t, err := c.promptType()
	if err != nil {
		return err
	}
	cat, err := c.deps.Categories.Create(ctx, name, t)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Category created: %s (%s) %s\n", cat.Name, cat.ID, cat.Type)
	return nil
}

// createOperation copies the operation type from the chosen category.
func createOperation(ctx context.Context, c *Console) error {
	acc, err := c.chooseAccount(ctx)
	if err != nil {
		return err
	}
	cat, err := c.chooseCategory(ctx)
	if err != nil {
		return err
	}
	amount, err := c.promptDecimal("Amount")
	if err != nil {
		return err
	}
	desc, err := c.readLine("Description: ")
	if err != nil {
		return err
	}
	op, err := c.deps.Operations.Create(ctx, cat.Type, acc.ID, amount, desc, cat.ID)
	if err != nil {
		return err
	}
	updated, err := c.deps.Accounts.Get(ctx, acc.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Operation created: %s %s %s, %s balance %s\n", op.ID, op.Type, c.money(op.Amount), updated.Name, c.money(updated.Balance))
	return nil
}

func showAnalytics(ctx context.Context, c *Console) error {
	start, err := c.promptTime("Start")
	if err != nil {
		return err
	}
	end, err := c.promptTime("End")
	if err != nil {
		return err
	}
	r, err := c.deps.Analytics.Report(ctx, start, end)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Operations in period: %d\n", r.Count)
	fmt.Fprintf(c.out, "Net change: %s\n", c.money(r.NetChange))

	fmt.Fprintln(c.out, "By type:")
	for _, t := range []ledger.Type{ledger.TypeIncome, ledger.TypeExpense} {
		if sum, ok := r.ByType[t]; ok {
			fmt.Fprintf(c.out, "  %s: %s\n", t, c.money(sum))
		}
	}

	fmt.Fprintln(c.out, "By category:")
	type row struct {
		name string
		sum  decimal.Decimal
	}
	rows := make([]row, 0, len(r.ByCategory))
	for id, sum := range r.ByCategory {
		rows = append(rows, row{name: c.categoryName(ctx, id), sum: sum})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	for _, rw := range rows {
		fmt.Fprintf(c.out, "  %s: %s\n", rw.name, c.money(rw.sum))
	}
	return nil
}

func listAccounts(ctx context.Context, c *Console) error {
	accs, err := c.deps.Accounts.List(ctx)
	if err != nil {
		return err
	}
	if len(accs) == 0 {
		fmt.Fprintln(c.out, "No accounts.")
	}
	for _, a := range accs {
		fmt.Fprintf(c.out, "%s  %-20s %s\n", a.ID, a.Name, c.money(a.Balance))
	}
	return nil
}

func listCategories(ctx context.Context, c *Console) error {
	cats, err := c.deps.Categories.List(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		fmt.Fprintln(c.out, "No categories.")
	}
	for _, cat := range cats {
		fmt.Fprintf(c.out, "%s  %-20s %s\n", cat.ID, cat.Name, cat.Type)
	}
	return nil
}

func listOperations(ctx context.Context, c *Console) error {
	ops, err := c.deps.Operations.List(ctx)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		fmt.Fprintln(c.out, "No operations.")
	}
	for _, op := range ops {
		fmt.Fprintln(c.out, c.describeOperation(ctx, op))
	}
	return nil
}

func deleteOperation(ctx context.Context, c *Console) error {
	ops, err := c.deps.Operations.List(ctx)
	if err != nil {
		return err
	}
	i, err := c.choose("operation", len(ops), func(i int) string { return c.describeOperation(ctx, ops[i]) })
	if err != nil {
		return err
	}
	if err := c.deps.Operations.Delete(ctx, ops[i].ID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Operation %s cancelled\n", ops[i].ID)
	return nil
}

func exportData(ctx context.Context, c *Console) error {
	path, err := c.readLine("File path: ")
	if err != nil {
		return err
	}
	written, err := c.deps.Exporter.Export(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Exported to %s\n", written)
	return nil
}

func importData(ctx context.Context, c *Console) error {
	path, err := c.readLine("File path: ")
	if err != nil {
		return err
	}
	res, err := c.deps.Importer.Import(ctx, path)
	if err != nil {
		fmt.Fprintf(c.out, "Imported before failure: %d accounts, %d categories, %d operations\n", res.Accounts, res.Categories, res.Operations)
		return err
	}
	fmt.Fprintf(c.out, "Imported %d accounts, %d categories, %d operations\n", res.Accounts, res.Categories, res.Operations)
	return nil
}

func (c *Console) chooseAccount(ctx context.Context) (ledger.Account, error) {
	accs, err := c.deps.Accounts.List(ctx)
	if err != nil {
		return ledger.Account{}, err
	}
	i, err := c.choose("account", len(accs), func(i int) string {
		return fmt.Sprintf("%s (%s)", accs[i].Name, c.money(accs[i].Balance))
	})
	if err != nil {
		return ledger.Account{}, err
	}
	return accs[i], nil
}

func (c *Console) chooseCategory(ctx context.Context) (ledger.Category, error) {
	cats, err := c.deps.Categories.List(ctx)
	if err != nil {
		return ledger.Category{}, err
	}
	i, err := c.choose("category", len(cats), func(i int) string {
		return fmt.Sprintf("%s [%s]", cats[i].Name, cats[i].Type)
	})
	if err != nil {
		return ledger.Category{}, err
	}
	return cats[i], nil
}

// categoryName falls back to the id for deleted categories.
func (c *Console) categoryName(ctx context.Context, id uuid.UUID) string {
	if cat, err := c.deps.Categories.Get(ctx, id); err == nil {
		return cat.Name
	}
	return id.String()
}

func (c *Console) describeOperation(ctx context.Context, op ledger.Operation) string {
	return fmt.Sprintf("%s  %s  %-7s %s  %s  %q",
		op.Date.In(c.loc).Format(DateLayout), op.ID, op.Type, c.money(op.Amount), c.categoryName(ctx, op.CategoryID), op.Description)
}
