package core

import "strings"

// Canonical field names, entity-qualified. The prefix before the dot is
// the entity the classifier counts.
const (
	FieldClientName    = "client.name"
	FieldClientCountry = "client.country"
	FieldClientCity    = "client.city"
	FieldClientEmail   = "client.email"
	FieldClientPhone   = "client.phone"

	FieldProductName = "product.name"

	FieldOrderDate     = "order.date"
	FieldOrderStatus   = "order.status"
	FieldOrderCurrency = "order.currency"

	FieldLineQuantity  = "orderline.quantity"
	FieldLineUnitPrice = "orderline.unitPrice"

	FieldProductionQuantity = "production.quantity"
	FieldProductionDate     = "production.date"
	FieldProductionShift    = "production.shift"
	FieldProductionQuality  = "production.quality"

	FieldStockQuantity = "stock.quantity"
	FieldStockType     = "stock.type"
	FieldStockReason   = "stock.reason"
	FieldStockDate     = "stock.date"
)

// FieldSynonyms lists the header spellings that resolve to one canonical
// field. Synonyms are stored pre-normalized (see NormalizeHeader).
type FieldSynonyms struct {
	Field    string
	Synonyms []string
}

// DefaultSynonyms returns the synonym table in its fixed match order.
// Order matters: the matcher awards a header to the first field whose
// synonym list matches, so generic spellings like "date" belong to the
// field that should win them.
func DefaultSynonyms() []FieldSynonyms {
	return []FieldSynonyms{
		{FieldClientName, []string{"client", "nom client", "nom du client", "client name", "customer", "customer name", "raison sociale", "société", "societe"}},
		{FieldClientCountry, []string{"pays", "country", "pays client"}},
		{FieldClientCity, []string{"ville", "city", "ville client"}},
		{FieldClientEmail, []string{"email", "e mail", "mail", "courriel", "adresse email"}},
		{FieldClientPhone, []string{"téléphone", "telephone", "phone", "tél", "tel", "numéro de téléphone", "numero de telephone"}},

		{FieldProductName, []string{"produit", "product", "nom produit", "nom du produit", "product name", "article", "référence", "reference", "ref produit"}},

		{FieldOrderDate, []string{"date commande", "date de commande", "order date", "date"}},
		{FieldOrderStatus, []string{"statut", "status", "état", "etat", "statut commande"}},
		{FieldOrderCurrency, []string{"devise", "currency", "monnaie"}},

		{FieldLineQuantity, []string{"quantité", "quantite", "quantity", "qty", "qté", "qte", "tonnage", "quantité commandée", "quantite commandee"}},
		{FieldLineUnitPrice, []string{"prix unitaire", "prix", "unit price", "price", "pu", "prix kg", "prix au kg", "prix par kg"}},

		{FieldProductionQuantity, []string{"quantité produite", "quantite produite", "production", "produced quantity", "qté produite", "qte produite"}},
		{FieldProductionDate, []string{"date de production", "date production", "production date"}},
		{FieldProductionShift, []string{"équipe", "equipe", "shift", "poste"}},
		{FieldProductionQuality, []string{"qualité", "qualite", "quality", "grade"}},

		{FieldStockQuantity, []string{"quantité stock", "quantite stock", "stock", "stock quantity", "qté stock", "qte stock"}},
		{FieldStockType, []string{"type de mouvement", "type mouvement", "mouvement", "sens", "movement type", "entrée sortie", "entree sortie"}},
		{FieldStockReason, []string{"motif", "reason", "raison", "commentaire"}},
		{FieldStockDate, []string{"date mouvement", "date de mouvement", "date stock", "movement date"}},
	}
}

// fieldEntity returns the entity prefix of a canonical field name.
func fieldEntity(field string) string {
	if i := strings.IndexByte(field, '.'); i >= 0 {
		return field[:i]
	}
	return field
}
