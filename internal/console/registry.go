package console

const (
	cmdCreateAccount   = "create_account"
	cmdCreateCategory  = "create_category"
	cmdCreateOperation = "create_operation"
	cmdShowAnalytics   = "show_analytics"
	cmdListAccounts    = "list_accounts"
	cmdListCategories  = "list_categories"
	cmdListOperations  = "list_operations"
	cmdDeleteOperation = "delete_operation"
	cmdExport          = "export"
	cmdImport          = "import"
	cmdExit            = "exit"
)

// buildCommands returns the menu in display order.
func buildCommands() []Command {
	return []Command{
		{Name: cmdCreateAccount, Title: "Create account", Run: createAccount},
		{Name: cmdCreateCategory, Title: "Create category", Run: createCategory},
		{Name: cmdCreateOperation, Title: "Create operation", Run: createOperation},
		{Name: cmdShowAnalytics, Title: "Show analytics", Run: showAnalytics},
		{Name: cmdListAccounts, Title: "List accounts", Run: listAccounts},
		{Name: cmdListCategories, Title: "List categories", Run: listCategories},
		{Name: cmdListOperations, Title: "List operations", Run: listOperations},
		{Name: cmdDeleteOperation, Title: "Delete operation", Run: deleteOperation},
		{Name: cmdExport, Title: "Export data", Run: exportData},
		{Name: cmdImport, Title: "Import data", Run: importData},
		{Name: cmdExit, Title: "Exit"},
	}
}
