package store

// Collection names a spreadsheet tab together with its ordered column
// schema. The first column is always the row identifier unless IDColumn
// overrides it.
type Collection struct {
	Sheet    string
	Columns  []string
	IDColumn string
}

// ID returns the identifier column for the collection.
func (c Collection) ID() string {
	if c.IDColumn != "" {
		return c.IDColumn
	}
	return c.Columns[0]
}

var (
	// Designs is the catalog of jewellery designs.
	Designs = Collection{
		Sheet: "Designs",
		Columns: []string{
			"design_id", "name", "category", "designer_id",
			"base_design_cost", "image_drive_link", "spec_doc_link",
			"notes", "status", "created_at", "updated_at",
		},
	}

	// Variants holds the physical SKU instances of designs, including the
	// five cost components and the derived final cost / profit fields.
	Variants = Collection{
		Sheet: "ProductVariants",
		Columns: []string{
			"variant_id", "design_id", "variant_code", "size", "finish",
			"material_cost", "making_cost", "finishing_cost", "packing_cost", "design_cost",
			"final_cost", "selling_price", "profit", "profit_margin",
			"stock_qty", "image_drive_link",
			"notes", "status", "created_at", "updated_at",
		},
	}

	// Dealers holds running-balance accounts for suppliers and customers.
	Dealers = Collection{
		Sheet: "Dealers",
		Columns: []string{
			"dealer_id", "dealer_code", "dealer_type", "dealer_category", "name",
			"contact_person", "phone", "email", "address", "gstin",
			"bank_name", "account_no", "ifsc", "opening_balance", "current_balance",
			"notes", "status", "created_at", "updated_at",
		},
	}

	// Designers lists external design partners.
	Designers = Collection{
		Sheet: "Designers",
		Columns: []string{
			"designer_id", "name", "company", "phone", "email",
			"charge_type", "default_rate", "specialization", "portfolio",
			"notes", "status", "created_at", "updated_at",
		},
	}

	// Materials is raw material stock reference data.
	Materials = Collection{
		Sheet: "Materials",
		Columns: []string{
			"material_id", "name", "category", "unit",
			"current_stock", "min_stock_alert",
			"last_purchase_price", "last_purchase_date",
			"notes", "status", "created_at", "updated_at",
		},
	}

	// Invoices carries totals plus the derived payment aggregate fields,
	// which are a cache recomputed by the ledger, never a source of truth.
	Invoices = Collection{
		Sheet: "Invoices",
		Columns: []string{
			"invoice_id", "invoice_number", "invoice_type", "dealer_id",
			"invoice_date", "due_date", "sub_total", "tax_percent", "tax_amount",
			"discount_percent", "discount_amount", "grand_total", "amount_paid",
			"balance_due", "payment_status", "bill_image_link", "notes",
			"created_at", "updated_at",
		},
	}

	// InvoiceItems are invoice lines.
	InvoiceItems = Collection{
		Sheet: "InvoiceItems",
		Columns: []string{
			"item_id", "invoice_id", "product_id", "description", "quantity",
			"unit_price", "total_price", "cost_type", "notes",
		},
	}

	// CostBreakdown is the append-only audit of every cost posting.
	CostBreakdown = Collection{
		Sheet: "CostBreakdown",
		Columns: []string{
			"breakdown_id", "product_id", "cost_type", "invoice_id", "dealer_id",
			"amount", "date", "notes", "created_at",
		},
	}

	// Settings is a key/value tab.
	Settings = Collection{
		Sheet:    "Settings",
		Columns:  []string{"setting_key", "setting_value", "category", "updated_at"},
		IDColumn: "setting_key",
	}

	// WorkflowStages is the ordered stage catalog; when empty the sequencer
	// falls back to its compiled-in default table.
	WorkflowStages = Collection{
		Sheet:    "WorkflowStages",
		Columns:  []string{"stage_order", "stage_code", "display_name", "is_final_stage"},
		IDColumn: "stage_code",
	}

	// Progress holds one row per (variant, stage) occurrence.
	Progress = Collection{
		Sheet: "ProductProgress",
		Columns: []string{
			"progress_id", "variant_id", "design_id", "stage_code",
			"assigned_dealer_id", "quantity", "status", "cost",
			"start_date", "end_date", "remarks",
			"created_at", "updated_at",
		},
	}

	// Payments is the append-only money ledger.
	Payments = Collection{
		Sheet: "Payments",
		Columns: []string{
			"payment_id", "payment_type", "related_to", "invoice_id",
			"progress_id", "dealer_id", "amount", "payment_mode",
			"reference_no", "payment_date", "notes",
			"created_at", "updated_at",
		},
	}

	// PlatingRates is the per-kg rate catalog for plating types.
	PlatingRates = Collection{
		Sheet: "PlatingRates",
		Columns: []string{
			"rate_id", "plating_type", "rate_per_kg", "unit",
			"effective_from", "vendor_dealer_id", "status",
			"created_at", "updated_at",
		},
	}

	// PlatingJobs ties a plating assignment to its progress entry.
	PlatingJobs = Collection{
		Sheet: "PlatingJobs",
		Columns: []string{
			"job_id", "progress_id", "variant_id", "design_id",
			"dealer_id", "quantity", "plating_type", "weight_in_kg", "rate_per_kg",
			"calculated_cost", "status", "start_date", "end_date", "notes",
			"created_at", "updated_at",
		},
	}
)

func (c Collection) hasColumn(name string) bool {
	for _, col := range c.Columns {
		if col == name {
			return true
		}
	}
	return false
}
