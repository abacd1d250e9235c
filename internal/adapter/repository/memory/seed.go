package memory

// DefaultSeedAccounts returns the demo dataset the store boots with.
// Accounts are never created at runtime, only closed.
func DefaultSeedAccounts() []SeedAccount {
	return []SeedAccount{
		{
			Owner:        "Jonas Schmedtmann",
			Pin:          "1111",
			InterestRate: "1.2",
			Currency:     "EUR",
			Locale:       "pt-PT",
			Movements: []string{
				"200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300",
			},
			MovementDates: []string{
				"2020-01-25T14:18:46.235Z",
				"2020-02-05T16:33:06.386Z",
				"2021-07-25T14:43:26.374Z",
				"2021-07-28T18:49:59.371Z",
				"2021-07-30T05:01:20.894Z",
				"2021-08-22T13:15:33.035Z",
				"2021-08-26T09:48:16.867Z",
				"2021-08-27T06:04:23.907Z",
			},
		},
		{
			Owner:        "Jessica Davis",
			Pin:          "2222",
			InterestRate: "1.5",
			Currency:     "USD",
			Locale:       "en-US",
			Movements: []string{
				"5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30",
			},
			MovementDates: []string{
				"2019-11-01T13:15:33.035Z",
				"2019-11-30T09:48:16.867Z",
				"2019-12-25T06:04:23.907Z",
				"2020-01-25T14:18:46.235Z",
				"2020-02-05T16:33:06.386Z",
				"2021-07-25T14:43:26.374Z",
				"2021-07-28T18:49:59.371Z",
				"2021-07-30T05:01:20.894Z",
			},
		},
	}
}
