package render

// interactivityScript keeps the preview inside its sandbox and reports
// section clicks and hovers to the host frame. Messages:
//
//	{type: "section-clicked",   sectionId}
//	{type: "section-hovered",   sectionId}
//	{type: "section-hover-end", sectionId}
const interactivityScript = `
(function () {
  function post(type, id) {
    if (window.parent && window.parent !== window) {
      window.parent.postMessage({ type: type, sectionId: id }, '*');
    }
  }
  function interactive(el) {
    return !!(el && el.closest && el.closest('a, button, input, textarea, select, label, form'));
  }
  function init() {
    document.addEventListener('click', function (e) {
      var link = e.target.closest ? e.target.closest('a') : null;
      if (link) {
        e.preventDefault();
        var href = link.getAttribute('href') || '';
        if (href.charAt(0) === '#' && href.length > 1) {
          var target = document.getElementById(href.slice(1));
          if (target) { target.scrollIntoView({ behavior: 'smooth' }); }
        }
      }
    }, true);
    document.querySelectorAll('form').forEach(function (form) {
      form.addEventListener('submit', function (e) {
        e.preventDefault();
        e.stopPropagation();
      });
    });
    document.querySelectorAll('[data-section-id]').forEach(function (section) {
      var id = section.getAttribute('data-section-id');
      section.addEventListener('click', function (e) {
        if (!interactive(e.target)) { post('section-clicked', id); }
      });
      section.addEventListener('mouseenter', function () { post('section-hovered', id); });
      section.addEventListener('mouseleave', function () { post('section-hover-end', id); });
    });
  }
  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', init);
  } else {
    init();
  }
})();
`
