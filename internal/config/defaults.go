package config

// Default returns the built-in configuration. Every table is freshly
// allocated so callers may modify the result.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/truerev/truerev.db",
		},
		BusinessDaysPerMonth: 21.67,
		Classification: ClassificationConfig{
			ExcludePatterns:  defaultExcludePatterns(),
			RevenuePatterns:  defaultRevenuePatterns(),
			IndustryPatterns: defaultIndustryPatterns(),
			Heuristics: Heuristics{
				LargeDepositThreshold: 50000,
				RoundNumberThreshold:  1000,
				RoundNumberUnit:       1000,
				VeryRoundUnit:         5000,
				SuspiciousLoanAmounts: []float64{5000, 10000, 15000, 20000, 25000, 30000, 50000, 75000, 100000},
				SuspiciousTolerance:   1.00,
				DefaultConfidence:     0.5,
			},
		},
		Funders: defaultFunders(),
		Learning: LearningConfig{
			Enabled:                 true,
			MatchThreshold:          0.6,
			MinConfidence:           60,
			BaseConfidence:          50,
			ConfidencePerOccurrence: 5,
		},
		Volatility: VolatilityThresholds{
			LowBelow:  15,
			HighAbove: 30,
		},
		Underwriting: UnderwritingConfig{
			MaxWithholdPercentage: 0.20,
			MinWithholdPercentage: 0.05,
			MinFundingAmount:      5000,
			MaxFundingAmount:      500000,
			ApprovedThreshold:     0.99,
			CapacityEpsilon:       0.01,
			DefaultTermMonths:     6,
			DefaultRiskScore:      50,
			MinRiskScore:          0,
			RiskTiers: []RiskTier{
				{ID: "tier_1", Name: "Premium", MinRiskScore: 80, BaseFactorRate: 1.15, MaxFactorRate: 1.25, MaxTermMonths: 12, ApprovalPercentage: 1.0},
				{ID: "tier_2", Name: "Standard", MinRiskScore: 60, BaseFactorRate: 1.20, MaxFactorRate: 1.35, MaxTermMonths: 9, ApprovalPercentage: 0.85},
				{ID: "tier_3", Name: "Moderate Risk", MinRiskScore: 40, BaseFactorRate: 1.30, MaxFactorRate: 1.45, MaxTermMonths: 6, ApprovalPercentage: 0.70},
				{ID: "tier_4", Name: "High Risk", MinRiskScore: 20, BaseFactorRate: 1.40, MaxFactorRate: 1.55, MaxTermMonths: 4, ApprovalPercentage: 0.50},
				{ID: "tier_5", Name: "Very High Risk", MinRiskScore: 0, BaseFactorRate: 1.50, MaxFactorRate: 1.65, MaxTermMonths: 3, ApprovalPercentage: 0.30},
			},
			CreditBands: []CreditBand{
				{ID: "excellent", MinScore: 750, FactorAdjustment: -0.05, TermAdjustment: 2, ApprovalAdjustment: 0.10},
				{ID: "good", MinScore: 680, FactorAdjustment: -0.02, TermAdjustment: 1, ApprovalAdjustment: 0.05},
				{ID: "fair", MinScore: 620},
				{ID: "poor", MinScore: 550, FactorAdjustment: 0.05, TermAdjustment: -1, ApprovalAdjustment: -0.10},
				{ID: "very_poor", MinScore: 0, FactorAdjustment: 0.10, TermAdjustment: -2, ApprovalAdjustment: -0.20},
			},
			Industries: defaultIndustries(),
			Stacking: StackingConfig{
				MaxPositions:       4,
				PremiumPerPosition: 0.03,
				Positions: []PositionAdjustment{
					{Position: 1, FactorAdjustment: 0, ApprovalModifier: 1.0},
					{Position: 2, FactorAdjustment: 0.05, ApprovalModifier: 0.85},
					{Position: 3, FactorAdjustment: 0.10, ApprovalModifier: 0.70},
					{Position: 4, FactorAdjustment: 0.15, ApprovalModifier: 0.50},
				},
			},
			VolatilityAdjustments: []VolatilityAdjustment{
				{Level: "low", FactorAdjustment: -0.02, TermAdjustment: 1, ApprovalAdjustment: 0.05},
				{Level: "medium"},
				{Level: "high", FactorAdjustment: 0.05, TermAdjustment: -1, ApprovalAdjustment: -0.10},
			},
			Holdback: HoldbackConfig{
				Base:        0.10,
				PerPosition: 0.02,
				Min:         0.08,
				Max:         0.25,
				RiskAdjustments: []HoldbackRiskAdjustment{
					{Level: "low", MinRiskScore: 70, Adjustment: -0.02},
					{Level: "medium", MinRiskScore: 40, Adjustment: 0},
					{Level: "high", MinRiskScore: 20, Adjustment: 0.03},
					{Level: "very_high", MinRiskScore: 0, Adjustment: 0.05},
				},
			},
			Validation: ValidationBounds{
				MinFactorRate:   1.10,
				MaxFactorRate:   1.75,
				MinTermMonths:   2,
				MaxTermMonths:   18,
				MinDailyPayment: 50,
				MaxDailyPayment: 50000,
				MinHoldback:     0.05,
				MaxHoldback:     0.30,
			},
		},
	}
}

func withhold(v float64) *float64 {
	return &v
}

func defaultIndustries() []IndustryAdjustment {
	return []IndustryAdjustment{
		{Industry: "healthcare", RiskLevel: "low", FactorAdjustment: -0.03, TermAdjustment: 1},
		{Industry: "professional_services", RiskLevel: "low", FactorAdjustment: -0.02, TermAdjustment: 1},
		{Industry: "dental", RiskLevel: "low", FactorAdjustment: -0.03, TermAdjustment: 1},
		{Industry: "retail", RiskLevel: "medium"},
		{Industry: "ecommerce", RiskLevel: "medium"},
		{Industry: "auto_repair", RiskLevel: "medium"},
		{Industry: "beauty_salon", RiskLevel: "medium", FactorAdjustment: 0.02},
		{Industry: "restaurant", RiskLevel: "medium_high", FactorAdjustment: 0.05, TermAdjustment: -1, MaxWithholdOverride: withhold(0.18)},
		{Industry: "bar_nightclub", RiskLevel: "medium_high", FactorAdjustment: 0.08, TermAdjustment: -1, MaxWithholdOverride: withhold(0.15)},
		{Industry: "food_truck", RiskLevel: "medium_high", FactorAdjustment: 0.07, TermAdjustment: -1, MaxWithholdOverride: withhold(0.15)},
		{Industry: "construction", RiskLevel: "high", FactorAdjustment: 0.08, TermAdjustment: -2, MaxWithholdOverride: withhold(0.15)},
		{Industry: "trucking", RiskLevel: "high", FactorAdjustment: 0.10, TermAdjustment: -2, MaxWithholdOverride: withhold(0.15)},
		{Industry: "landscaping", RiskLevel: "high", FactorAdjustment: 0.08, TermAdjustment: -1, MaxWithholdOverride: withhold(0.15)},
		{Industry: "cannabis", RiskLevel: "very_high", FactorAdjustment: 0.15, TermAdjustment: -3, MaxWithholdOverride: withhold(0.12)},
		{Industry: "gambling", RiskLevel: "very_high", FactorAdjustment: 0.15, TermAdjustment: -3, MaxWithholdOverride: withhold(0.12)},
	}
}

func defaultExcludePatterns() []PatternRule {
	return []PatternRule{
		// Transfers between the merchant's own accounts.
		{ID: "transfer_from_account", Pattern: `TRANSFER\s+(FROM|FRM)\s+(CHK|CHECK|SAV|SAVINGS|\*+\d{4})`, Label: "Internal account transfer"},
		{ID: "transfer_to_account", Pattern: `TRANSFER\s+(TO|INTO)\s+(CHK|CHECK|SAV|SAVINGS|\*+\d{4})`, Label: "Internal account transfer"},
		{ID: "internal_transfer", Pattern: `INTERNAL\s*TRANSFER`, Label: "Internal transfer"},
		{ID: "account_transfer", Pattern: `ACCOUNT\s*TRANSFER`, Label: "Account transfer"},
		{ID: "move_money", Pattern: `MOVE\s*MONEY`, Label: "Internal money movement"},
		{ID: "funds_transfer", Pattern: `FUNDS\s*TRANSFER`, Label: "Funds transfer"},
		{ID: "online_transfer", Pattern: `ONLINE\s*TRANSFER\s*(FROM|TO)`, Label: "Online banking transfer"},
		{ID: "xfer", Pattern: `XFER\s*(FROM|TO)`, Label: "Transfer between accounts"},
		{ID: "wire_transfer", Pattern: `WIRE\s*TRANSFER`, Unless: `CUSTOMER|CLIENT|INVOICE`, Label: "Wire transfer"},
		{ID: "between_accounts", Pattern: `BETWEEN\s*ACCOUNTS`, Label: "Between accounts transfer"},

		// Advance and loan proceeds.
		{ID: "funder_ondeck", Pattern: `ONDECK|ON\s*DECK`, Label: "MCA funder - OnDeck"},
		{ID: "funder_kabbage", Pattern: `KABBAGE`, Label: "MCA funder - Kabbage"},
		{ID: "funder_fundbox", Pattern: `FUNDBOX`, Label: "MCA funder - Fundbox"},
		{ID: "funder_bluevine", Pattern: `BLUEVINE|BLUE\s*VINE`, Label: "MCA funder - BlueVine"},
		{ID: "funder_credibly", Pattern: `CREDIBLY`, Label: "MCA funder - Credibly"},
		{ID: "funder_kapitus", Pattern: `KAPITUS`, Label: "MCA funder - Kapitus"},
		{ID: "funder_rapid_finance", Pattern: `RAPID\s*FINANCE`, Label: "MCA funder - Rapid Finance"},
		{ID: "funder_can_capital", Pattern: `CAN\s*CAPITAL`, Label: "MCA funder - CAN Capital"},
		{ID: "funder_national_funding", Pattern: `NATIONAL\s*FUNDING`, Label: "MCA funder - National Funding"},
		{ID: "funder_bizfi", Pattern: `BIZFI|BIZ2CREDIT`, Label: "MCA funder - BizFi/Biz2Credit"},
		{ID: "funder_lendio", Pattern: `LENDIO`, Label: "MCA funder - Lendio"},
		{ID: "funder_fundera", Pattern: `FUNDERA`, Label: "MCA funder - Fundera"},
		{ID: "funder_square_capital", Pattern: `SQUARE\s*CAPITAL|SQ\s*CAPITAL`, Label: "MCA funder - Square Capital"},
		{ID: "funder_paypal_working_capital", Pattern: `PAYPAL\s*WORKING\s*CAPITAL`, Label: "MCA funder - PayPal Working Capital"},
		{ID: "funder_amazon_lending", Pattern: `AMAZON\s*LENDING`, Label: "MCA funder - Amazon Lending"},
		{ID: "funder_shopify_capital", Pattern: `SHOPIFY\s*CAPITAL`, Label: "MCA funder - Shopify Capital"},
		{ID: "funder_stripe_capital", Pattern: `STRIPE\s*CAPITAL`, Label: "MCA funder - Stripe Capital"},
		{ID: "funder_clearco", Pattern: `CLEARCO|CLEARBANC`, Label: "MCA funder - Clearco"},
		{ID: "funder_libertas", Pattern: `LIBERTAS`, Label: "MCA funder - Libertas"},
		{ID: "funder_forward_financing", Pattern: `FORWARD\s*FINANCING`, Label: "MCA funder - Forward Financing"},
		{ID: "funder_fora_financial", Pattern: `FORA\s*FINANCIAL`, Label: "MCA funder - Fora Financial"},
		{ID: "funder_reliant_funding", Pattern: `RELIANT\s*FUNDING`, Label: "MCA funder - Reliant Funding"},
		{ID: "funder_headway_capital", Pattern: `HEADWAY\s*CAPITAL`, Label: "MCA funder - Headway Capital"},
		{ID: "funder_behalf", Pattern: `BEHALF`, Label: "MCA funder - Behalf"},
		{ID: "funder_greenbox_capital", Pattern: `GREENBOX\s*CAPITAL`, Label: "MCA funder - Greenbox Capital"},
		{ID: "funder_kalamata_capital", Pattern: `KALAMATA\s*CAPITAL`, Label: "MCA funder - Kalamata Capital"},
		{ID: "funder_mulligan_funding", Pattern: `MULLIGAN\s*FUNDING`, Label: "MCA funder - Mulligan Funding"},
		{ID: "funder_united_capital_source", Pattern: `UNITED\s*CAPITAL\s*SOURCE`, Label: "MCA funder - United Capital Source"},
		{ID: "merchant_cash_advance", Pattern: `MERCHANT\s*CASH\s*ADVANCE`, Label: "MCA funding"},
		{ID: "mca_funding", Pattern: `MCA\s*(FUNDING|ADVANCE|DEPOSIT)`, Label: "MCA funding"},
		{ID: "business_loan", Pattern: `BUSINESS\s*(LOAN|ADVANCE|FUNDING)`, Label: "Business loan/advance"},
		{ID: "loan_proceeds", Pattern: `LOAN\s*(PROCEED|DEPOSIT|DISBURS)`, Label: "Loan proceeds"},
		{ID: "working_capital_advance", Pattern: `WORKING\s*CAPITAL\s*(ADVANCE|FUNDING)`, Label: "Working capital advance"},
		{ID: "revenue_based_financing", Pattern: `REVENUE\s*BASED\s*FINANCING`, Label: "Revenue based financing"},
		{ID: "line_of_credit", Pattern: `LINE\s*OF\s*CREDIT|LOC\s*(ADVANCE|DRAW)`, Label: "Line of credit advance"},
		{ID: "credit_line_advance", Pattern: `CREDIT\s*LINE\s*(ADVANCE|DRAW)`, Label: "Credit line advance"},
		{ID: "term_loan", Pattern: `TERM\s*LOAN`, Label: "Term loan"},
		{ID: "equipment_financing", Pattern: `EQUIPMENT\s*(LOAN|FINANCING|LEASE)`, Label: "Equipment financing"},
		{ID: "sba_loan", Pattern: `SBA\s*(LOAN|EIDL|PPP)`, Label: "SBA loan"},
		{ID: "eidl_loan", Pattern: `EIDL\s*(ADVANCE|LOAN)`, Label: "EIDL loan"},
		{ID: "ppp_loan", Pattern: `PPP\s*(LOAN|FORGIVE)`, Label: "PPP loan"},

		// Owner and shareholder capital.
		{ID: "owner_contribution", Pattern: `OWNER\s*(CONTRIBUTION|DEPOSIT|LOAN|INVESTMENT)`, Label: "Owner capital injection"},
		{ID: "shareholder_contribution", Pattern: `SHAREHOLDER\s*(CONTRIBUTION|LOAN|DEPOSIT)`, Label: "Shareholder contribution"},
		{ID: "capital_contribution", Pattern: `CAPITAL\s*CONTRIBUTION`, Label: "Capital contribution"},
		{ID: "member_contribution", Pattern: `MEMBER\s*(CONTRIBUTION|DEPOSIT|LOAN)`, Label: "Member contribution"},
		{ID: "partner_contribution", Pattern: `PARTNER\s*(CONTRIBUTION|DEPOSIT)`, Label: "Partner contribution"},
		{ID: "personal_funds", Pattern: `PERSONAL\s*(DEPOSIT|TRANSFER|FUNDS)`, Label: "Personal funds transfer"},
		{ID: "owner_investment", Pattern: `INVESTMENT\s*FROM\s*OWNER`, Label: "Owner investment"},
		{ID: "equity_injection", Pattern: `EQUITY\s*(CONTRIBUTION|INJECTION)`, Label: "Equity injection"},

		// Tax refunds.
		{ID: "irs_treasury", Pattern: `IRS\s*TREAS`, Label: "IRS/Treasury payment"},
		{ID: "treasury_department", Pattern: `TREASURY\s*(DEPT|310)`, Label: "Treasury department"},
		{ID: "tax_refund", Pattern: `TAX\s*REFUND`, Label: "Tax refund"},
		{ID: "state_tax_refund", Pattern: `STATE\s*TAX\s*REF`, Label: "State tax refund"},
		{ID: "franchise_tax_refund", Pattern: `FRANCHISE\s*TAX\s*REF`, Label: "Franchise tax refund"},
		{ID: "sales_tax_refund", Pattern: `SALES\s*TAX\s*REF`, Label: "Sales tax refund"},

		// Reversals, refunds and adjustments.
		{ID: "chargeback_reversal", Pattern: `CHARGEBACK\s*REVERSAL`, Label: "Chargeback reversal"},
		{ID: "dispute_credit", Pattern: `DISPUTE\s*CREDIT`, Label: "Dispute credit"},
		{ID: "provisional_credit", Pattern: `PROVISIONAL\s*CREDIT`, Label: "Provisional credit"},
		{ID: "fee_reversal", Pattern: `FEE\s*REVERSAL`, Label: "Fee reversal"},
		{ID: "fee_refund", Pattern: `FEE\s*REFUND`, Label: "Fee refund"},
		{ID: "nsf_fee_reversal", Pattern: `NSF\s*FEE\s*REV`, Label: "NSF fee reversal"},
		{ID: "od_fee_reversal", Pattern: `OD\s*FEE\s*REV`, Label: "Overdraft fee reversal"},
		{ID: "overdraft_fee_reversal", Pattern: `OVERDRAFT\s*FEE\s*REV`, Label: "Overdraft fee reversal"},
		{ID: "adjustment_credit", Pattern: `ADJUSTMENT\s*CREDIT`, Label: "Account adjustment"},
		{ID: "correction_credit", Pattern: `CORRECTION\s*CREDIT`, Label: "Account correction"},
		{ID: "error_correction", Pattern: `ERROR\s*CORRECTION`, Label: "Error correction"},
		{ID: "refund_credit", Pattern: `REFUND\s*(CREDIT|FROM)`, Label: "Refund credit"},
		{ID: "return_item_credit", Pattern: `RETURN\s*ITEM\s*CREDIT`, Label: "Return item credit"},

		// Interest, rewards and bank credits.
		{ID: "interest", Pattern: `INTEREST\s*(PAYMENT|CREDIT|EARNED|PAID)`, Label: "Interest earned"},
		{ID: "dividend", Pattern: `DIVIDEND\s*(PAYMENT|CREDIT)`, Label: "Dividend"},
		{ID: "cash_back", Pattern: `CASH\s*BACK`, Label: "Cashback reward"},
		{ID: "cashback_reward", Pattern: `CASHBACK\s*REWARD`, Label: "Cashback reward"},
		{ID: "reward_credit", Pattern: `REWARD\s*(CREDIT|REDEMPTION)`, Label: "Reward credit"},
		{ID: "rebate", Pattern: `REBATE\s*(CREDIT|PAYMENT)`, Label: "Rebate"},
		{ID: "bonus_credit", Pattern: `BONUS\s*CREDIT`, Unless: `PAYROLL`, Label: "Bonus credit"},
		{ID: "promotional_credit", Pattern: `PROMOTIONAL\s*CREDIT`, Label: "Promotional credit"},
		{ID: "sign_up_bonus", Pattern: `SIGN\s*UP\s*BONUS`, Label: "Sign up bonus"},
		{ID: "referral_bonus", Pattern: `REFERRAL\s*BONUS`, Label: "Referral bonus"},

		// Insurance proceeds.
		{ID: "insurance_proceeds", Pattern: `INSURANCE\s*(CLAIM|PROCEED|PAYMENT|SETTLEMENT)`, Label: "Insurance proceeds"},
		{ID: "claim_payment", Pattern: `CLAIM\s*PAYMENT`, Label: "Insurance claim payment"},
		{ID: "settlement_payment", Pattern: `SETTLEMENT\s*PAYMENT`, Unless: `CARD|MERCHANT`, Label: "Settlement payment"},

		{ID: "personal_venmo", Pattern: `VENMO\s*(FROM|TRANSFER).*PERSONAL`, Label: "Personal Venmo transfer"},
		{ID: "personal_cashapp", Pattern: `CASHAPP\s*(FROM|TRANSFER).*PERSONAL`, Label: "Personal Cash App transfer"},
	}
}

func defaultRevenuePatterns() []PatternRule {
	return []PatternRule{
		// Card processor settlements.
		{ID: "square_settlement", Pattern: `SQUARE\s*(INC|DEPOSIT|TRANSFER|PAYOUT)`, Label: "Square card settlement"},
		{ID: "stripe_settlement", Pattern: `STRIPE\s*(TRANSFER|PAYOUT|DEPOSIT)`, Label: "Stripe settlement"},
		{ID: "shopify_payout", Pattern: `SHOPIFY\s*(PAYOUT|DEPOSIT|TRANSFER)`, Label: "Shopify payout"},
		{ID: "paypal_settlement", Pattern: `PAYPAL\s*(TRANSFER|DEPOSIT|INST\s*XFER)`, Unless: `WORKING\s*CAPITAL`, Label: "PayPal settlement"},
		{ID: "clover_settlement", Pattern: `CLOVER\s*(DEPOSIT|PAYOUT|TRANSFER)`, Label: "Clover settlement"},
		{ID: "toast_settlement", Pattern: `TOAST\s*(DEPOSIT|PAYOUT)`, Label: "Toast settlement"},
		{ID: "heartland_settlement", Pattern: `HEARTLAND\s*(DEPOSIT|MERCH)`, Label: "Heartland settlement"},
		{ID: "card_processor", Pattern: `WORLDPAY|VANTIV|FIRST\s*DATA`, Label: "Card processor settlement"},
		{ID: "card_processor_alt", Pattern: `ELAVON|MONERIS|AUTHORIZE\.?NET`, Label: "Card processor settlement"},
		{ID: "braintree_settlement", Pattern: `BRAINTREE\s*(DEPOSIT|PAYOUT)`, Label: "Braintree settlement"},
		{ID: "adyen_settlement", Pattern: `ADYEN\s*(DEPOSIT|PAYOUT)`, Label: "Adyen settlement"},
		{ID: "merchant_services", Pattern: `MERCHANT\s*SERV.*DEPOSIT`, Label: "Merchant services deposit"},
		{ID: "credit_card_deposit", Pattern: `CREDIT\s*CARD\s*DEPOSIT`, Label: "Credit card deposit"},
		{ID: "pos_deposit", Pattern: `POS\s*DEPOSIT`, Label: "POS deposit"},

		// Marketplace payouts.
		{ID: "amazon_payout", Pattern: `AMAZON\s*(SETTLEMENT|PAYOUT|TRANSFER)`, Unless: `LENDING`, Label: "Amazon marketplace payout"},
		{ID: "ebay_payout", Pattern: `EBAY\s*(MANAGED\s*PAYMENTS?|PAYOUT)`, Label: "eBay marketplace payout"},
		{ID: "etsy_payout", Pattern: `ETSY\s*(DEPOSIT|PAYOUT)`, Label: "Etsy marketplace payout"},
		{ID: "walmart_marketplace", Pattern: `WALMART\s*MARKETPLACE`, Label: "Walmart marketplace payout"},
		{ID: "doordash_payout", Pattern: `DOORDASH\s*(DEPOSIT|PAYOUT|TRANSFER)`, Label: "DoorDash payout"},
		{ID: "uber_eats_payout", Pattern: `UBER\s*EATS?\s*(DEPOSIT|PAYOUT)`, Label: "Uber Eats payout"},
		{ID: "grubhub_payout", Pattern: `GRUBHUB\s*(DEPOSIT|PAYOUT)`, Label: "Grubhub payout"},
		{ID: "postmates_payout", Pattern: `POSTMATES\s*(DEPOSIT|PAYOUT)`, Label: "Postmates payout"},

		// Peer payments received from customers.
		{ID: "zelle_from", Pattern: `ZELLE\s*(FROM|CREDIT\s*FROM|REC'?D?\s*FROM)`, Label: "Zelle payment received"},
		{ID: "zelle_payment_from", Pattern: `ZELLE\s*PAYMENT\s*FROM`, Label: "Zelle payment received"},

		{ID: "ach_credit", Pattern: `ACH\s*CREDIT`, Unless: `LOAN|ADVANCE|CAPITAL|FUNDING`, Label: "ACH customer payment"},

		// Customer deposits.
		{ID: "customer_deposit", Pattern: `DEPOSIT\s*(CASH|CHECK|MOBILE|ATM)`, Label: "Customer deposit"},
		{ID: "remote_deposit", Pattern: `REMOTE\s*DEPOSIT`, Label: "Mobile check deposit"},
		{ID: "mobile_check_deposit", Pattern: `MOBILE\s*CHECK\s*DEP`, Label: "Mobile check deposit"},

		// Invoice and customer payments.
		{ID: "invoice_payment", Pattern: `INVOICE\s*PAYMENT`, Label: "Invoice payment"},
		{ID: "client_payment", Pattern: `CLIENT\s*PAYMENT`, Label: "Client payment"},
		{ID: "customer_payment", Pattern: `CUSTOMER\s*PAYMENT`, Label: "Customer payment"},
	}
}

func defaultIndustryPatterns() []IndustryPatterns {
	return []IndustryPatterns{
		{Industry: "restaurant", Rules: []PatternRule{
			{ID: "restaurant_delivery", Pattern: `DOORDASH|UBER\s*EATS|GRUBHUB|POSTMATES`, Label: "Food delivery payout"},
			{ID: "restaurant_reservations", Pattern: `YELP\s*RESERV|OPENTABLE`, Label: "Reservation platform"},
			{ID: "restaurant_caviar", Pattern: `CAVIAR\s*(DEPOSIT|PAYOUT)`, Label: "Caviar payout"},
			{ID: "restaurant_seamless", Pattern: `SEAMLESS\s*(DEPOSIT|PAYOUT)`, Label: "Seamless payout"},
		}},
		{Industry: "retail", Rules: []PatternRule{
			{ID: "retail_register_deposit", Pattern: `POS\s*DEPOSIT|REGISTER\s*DEPOSIT`, Label: "POS deposit"},
			{ID: "retail_inventory_sale", Pattern: `INVENTORY\s*SALE`, Label: "Inventory sale"},
		}},
		{Industry: "professional_services", Rules: []PatternRule{
			{ID: "services_client_payment", Pattern: `INVOICE\s*PAYMENT|CLIENT\s*PAYMENT`, Label: "Client payment"},
			{ID: "services_retainer", Pattern: `RETAINER\s*PAYMENT`, Label: "Retainer payment"},
			{ID: "services_consulting_fee", Pattern: `CONSULTING\s*FEE`, Label: "Consulting fee"},
		}},
		{Industry: "healthcare", Rules: []PatternRule{
			{ID: "healthcare_insurance_reimbursement", Pattern: `INSURANCE\s*REIMBURSE`, Label: "Insurance reimbursement"},
			{ID: "healthcare_government", Pattern: `MEDICARE|MEDICAID`, Label: "Government healthcare payment"},
			{ID: "healthcare_patient_payment", Pattern: `PATIENT\s*PAYMENT`, Label: "Patient payment"},
		}},
		{Industry: "construction", Rules: []PatternRule{
			{ID: "construction_progress_payment", Pattern: `PROGRESS\s*PAYMENT`, Label: "Progress payment"},
			{ID: "construction_contract_payment", Pattern: `CONTRACT\s*PAYMENT`, Label: "Contract payment"},
			{ID: "construction_draw", Pattern: `DRAW\s*REQUEST`, Unless: `CREDIT\s*LINE`, Label: "Construction draw"},
		}},
		{Industry: "ecommerce", Rules: []PatternRule{
			{ID: "ecommerce_shopify", Pattern: `SHOPIFY\s*(PAYOUT|DEPOSIT)`, Label: "Shopify payout"},
			{ID: "ecommerce_woocommerce", Pattern: `WOOCOMMERCE`, Label: "WooCommerce payout"},
			{ID: "ecommerce_bigcommerce", Pattern: `BIGCOMMERCE`, Label: "BigCommerce payout"},
		}},
	}
}

func defaultFunders() []FunderPattern {
	return []FunderPattern{
		{Name: "OnDeck", Pattern: `ONDECK|ON\s*DECK`},
		{Name: "Kabbage", Pattern: `KABBAGE`},
		{Name: "Fundbox", Pattern: `FUNDBOX`},
		{Name: "BlueVine", Pattern: `BLUEVINE|BLUE\s*VINE`},
		{Name: "Credibly", Pattern: `CREDIBLY`},
		{Name: "Kapitus", Pattern: `KAPITUS`},
		{Name: "Rapid Finance", Pattern: `RAPID\s*FINANCE`},
		{Name: "CAN Capital", Pattern: `CAN\s*CAPITAL`},
		{Name: "National Funding", Pattern: `NATIONAL\s*FUNDING`},
		{Name: "BizFi", Pattern: `BIZFI|BIZ2CREDIT`},
		{Name: "Lendio", Pattern: `LENDIO`},
		{Name: "Fundera", Pattern: `FUNDERA`},
		{Name: "Square Capital", Pattern: `SQUARE\s*CAPITAL|SQ\s*CAPITAL`},
		{Name: "PayPal Working Capital", Pattern: `PAYPAL\s*WORK`},
		{Name: "Amazon Lending", Pattern: `AMAZON\s*LENDING`},
		{Name: "Shopify Capital", Pattern: `SHOPIFY\s*CAP`},
		{Name: "Stripe Capital", Pattern: `STRIPE\s*CAP`},
		{Name: "Clearco", Pattern: `CLEARCO|CLEARBANC`},
		{Name: "Libertas", Pattern: `LIBERTAS`},
		{Name: "Forward Financing", Pattern: `FORWARD\s*FINANCING`},
		{Name: "Fora Financial", Pattern: `FORA\s*FINANCIAL`},
		{Name: "Reliant Funding", Pattern: `RELIANT\s*FUNDING`},
		{Name: "Headway Capital", Pattern: `HEADWAY\s*CAPITAL`},
		{Name: "Behalf", Pattern: `BEHALF`},
		{Name: "Greenbox Capital", Pattern: `GREENBOX\s*CAPITAL`},
		{Name: "Kalamata Capital", Pattern: `KALAMATA\s*CAPITAL`},
		{Name: "Mulligan Funding", Pattern: `MULLIGAN\s*FUNDING`},
		{Name: "United Capital Source", Pattern: `UNITED\s*CAPITAL\s*SOURCE`},
		{Name: "Unknown MCA", Pattern: `MCA\s*(PAYMENT|PYMT|PMT)|MERCHANT\s*CASH|DAILY\s*(PAYMENT|PYMT|PMT)`},
	}
}
