package catalog

var exercises = []Exercise{
	{
		ID:          "ex-1",
		Title:       "Il tuo primo box colorato",
		Description: "Crea un semplice box con un colore di sfondo.",
		InitialHTML: "<div class=\"box\">\n  Ciao mondo!\n</div>",
		InitialCSS:  ".box {\n  \n}",
		Goal:        "Aggiungi le proprietà CSS: background-color, padding (20px), e border-radius (10px)",
		Concepts:    []string{"background-color", "padding", "border-radius"},
	},
	{
		ID:          "ex-2",
		Title:       "Testo stilizzato",
		Description: "Impara a dare stile al testo con CSS.",
		InitialHTML: "<div class=\"container\">\n  <h1 class=\"title\">Il mio titolo</h1>\n  <p class=\"text\">Questo è un paragrafo di esempio.</p>\n</div>",
		InitialCSS:  ".title {\n  \n}\n\n.text {\n  \n}",
		Goal:        "Stilizza il titolo con color, font-size (32px), font-weight (bold). Stilizza il testo con color, font-size (16px), line-height (1.6)",
		Concepts:    []string{"color", "font-size", "font-weight", "line-height"},
	},
	{
		ID:          "ex-3",
		Title:       "Centrare gli elementi",
		Description: "Impara a centrare un elemento nella pagina.",
		InitialHTML: "<div class=\"container\">\n  <div class=\"centered-box\">\n    Sono centrato!\n  </div>\n</div>",
		InitialCSS:  ".container {\n  \n}\n\n.centered-box {\n  \n}",
		Goal:        "Usa flexbox: nel container imposta display: flex, justify-content: center, align-items: center, min-height: 200px. Nel box aggiungi padding e background-color",
		Concepts:    []string{"display", "flexbox", "justify-content", "align-items"},
	},
	{
		ID:          "ex-4",
		Title:       "Bordi e ombre",
		Description: "Aggiungi profondità con bordi e ombre.",
		InitialHTML: "<div class=\"card\">\n  <h3>Card elegante</h3>\n  <p>Con bordi e ombre.</p>\n</div>",
		InitialCSS:  ".card {\n  \n}",
		Goal:        "Aggiungi border (2px solid #ddd), border-radius (15px), box-shadow (0 4px 10px rgba(0,0,0,0.1)), padding (20px)",
		Concepts:    []string{"border", "box-shadow", "rgba colors"},
	},
}
