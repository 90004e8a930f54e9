package gitlab

type User struct {
	Name     string `graphql:"name"`
	Username string `graphql:"username"`
}

type Label struct {
	Title string `graphql:"title"`
}

type Issue struct {
	IID         string  `graphql:"iid"`
	Title       string  `graphql:"title"`
	Description string  `graphql:"description"`
	State       string  `graphql:"state"`
	DueDate     *string `graphql:"dueDate"`
	CreatedAt   string  `graphql:"createdAt"`
	WebURL      string  `graphql:"webUrl"`
	Assignees   struct {
		Nodes []User `graphql:"nodes"`
	} `graphql:"assignees"`
	Labels struct {
		Nodes []Label `graphql:"nodes"`
	} `graphql:"labels"`
}

// LabelTitles liefert die Label-Namen eines Issues
func (i Issue) LabelTitles() []string {
	titles := make([]string, 0, len(i.Labels.Nodes))
	for _, l := range i.Labels.Nodes {
		titles = append(titles, l.Title)
	}
	return titles
}

type PageInfo struct {
	HasNextPage bool    `graphql:"hasNextPage"`
	EndCursor   *string `graphql:"endCursor"`
}

// ProjectQuery liest eine Seite Issues eines Projekts
type ProjectQuery struct {
	Project struct {
		Issues struct {
			Nodes    []Issue  `graphql:"nodes"`
			PageInfo PageInfo `graphql:"pageInfo"`
		} `graphql:"issues(first: $first, milestoneTitle: $milestoneTitle, after: $after)"`
	} `graphql:"project(fullPath: $projectPath)"`
}

// CurrentUserQuery dient als Verbindungstest
type CurrentUserQuery struct {
	CurrentUser *User `graphql:"currentUser"`
}
