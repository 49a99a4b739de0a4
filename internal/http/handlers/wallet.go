package handlers

import "net/http"

func (a *App) WalletProvision(w http.ResponseWriter, r *http.Request) {
	res, err := a.Wallets.Provision(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":       true,
		"wallet_id":     res.WalletID,
		"payment_alias": res.PaymentAlias,
	})
}
