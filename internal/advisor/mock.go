package advisor

import (
	"context"
	"fmt"
)

// Mock is a deterministic advisor for development and the degraded path.
// Its narratives follow the same layout live models are prompted for, so
// the extractors work identically on both.
type Mock struct{}

// NewMock returns the canned-text advisor.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) CommercialAdvice(_ context.Context, in CommercialContext) (string, error) {
	return fmt.Sprintf(`Analyse d'emplacement commercial pour %s:

Après analyse des données démographiques, des flux de circulation et de la concurrence, voici mes recommandations:

1. Emplacement optimal: Le secteur nord-est de la zone présente le meilleur potentiel avec un score d'attractivité de 8.7/10.
   - Avantages: Forte densité de population (environ 5000 habitants dans un rayon de 500m), proximité d'un centre médical, bon accès aux transports en commun.
   - Inconvénients: Présence d'un concurrent à 800m, stationnement limité.

2. Emplacement alternatif: Le carrefour central avec un score d'attractivité de 7.9/10.
   - Avantages: Excellente visibilité, fort passage piétonnier (environ 1200 personnes/heure), synergie avec commerces existants.
   - Inconvénients: Loyer potentiellement plus élevé, concurrence plus forte.

3. Emplacement de niche: La zone résidentielle sud avec un score de 7.2/10.
   - Avantages: Faible concurrence, stationnement facile.
   - Inconvénients: Moindre visibilité, accès limité en transports en commun.

Je recommande de privilégier le premier emplacement qui offre le meilleur équilibre entre accessibilité, visibilité et potentiel commercial pour votre %s.`,
		in.Location, in.BusinessType), nil
}

func (m *Mock) SoilAdvice(_ context.Context, in SoilContext) (string, error) {
	return fmt.Sprintf(`Analyse de la qualité des sols pour %s concernant la culture de %s:

Après analyse des données pédologiques, climatiques et hydrologiques, voici mes conclusions:

1. Zone optimale: La partie sud-est de la parcelle (environ 40%% de la surface totale) présente les meilleures conditions avec un score de 8.7/10.
   - Caractéristiques: Sol limoneux-sableux, pH 6.2-6.8, bonne capacité de drainage.
   - Recommandations: Aucun amendement majeur nécessaire, système d'irrigation goutte-à-goutte recommandé.

2. Zone intermédiaire: La partie centrale (environ 35%% de la surface) obtient un score de 6.5/10.
   - Caractéristiques: Sol plus argileux, pH 5.8-6.2, drainage moyen.
   - Recommandations: Amendement calcaire léger (500kg/ha), amélioration du drainage par sous-solage.

3. Zone peu adaptée: La partie nord-ouest (environ 25%% de la surface) obtient un score de 4.2/10.
   - Caractéristiques: Sol lourd et compacté, pH 5.5, risque d'engorgement.
   - Recommandations: Utiliser pour d'autres cultures, ou réaliser des travaux importants (drainage et amendements).

Pour maximiser le rendement de %s, je recommande de concentrer la culture sur les zones 1 et 2, avec les amendements appropriés pour la zone 2.`,
		in.Location, in.CropType, in.CropType), nil
}
